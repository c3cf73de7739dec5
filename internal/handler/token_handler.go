/*
Package handler provides the HTTP handler for the identity token exchange.

A client presents its Twitch OAuth access token; the server resolves it to the
owning account via the Helix API and answers with a short-lived signed
identity token used to authenticate the websocket handshake.
*/
package handler

import (
	"net/http"

	"emoteguessr/internal/pkg/auth/jwt"
	"emoteguessr/internal/pkg/errs"
	"emoteguessr/internal/pkg/logx"
	"emoteguessr/internal/pkg/req"
	"emoteguessr/internal/pkg/resp"
)

type TokenInput struct {
	AccessToken string `json:"access_token"`
}

// HandleTokenExchange processes the request to trade a Twitch OAuth token for
// a server-signed identity token.
func HandleTokenExchange(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input TokenInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.AccessToken == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		account, err := deps.Twitch.UserForToken(r.Context(), input.AccessToken)
		if err != nil {
			logx.Warn("Token exchange failed: Identity provider rejected or unreachable.", "error", err.Error())
			resp.RespondError(w, r, errs.NewError(errs.ErrIdentityProviderUnavailable))
			return
		}

		payload := &jwt.Payload{
			TwitchID:    account.ID,
			Login:       account.Login,
			DisplayName: account.DisplayName,
		}

		token, err := jwt.GenerateToken(payload, deps.SigningKey, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "Failed to sign identity token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		logx.Info("Identity token issued", "twitch_id", account.ID, "login", account.Login)

		resp.RespondSuccess(w, r, map[string]string{
			"jwt": token,
		})
	}
}
