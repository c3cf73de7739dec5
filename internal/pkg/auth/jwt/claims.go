package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims carried by a signed identity token.
// The core trusts whatever a verified token says: the display name inside it
// is the only identity attribute the game ever shows to other players.
type Payload struct {
	// StandardClaims embeds the JWT standard fields (Exp, Iat, Iss) used for
	// token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// TwitchID is the numeric Twitch account id, kept for traceability.
	TwitchID string `json:"twitch_id"`

	// Login is the Twitch login name.
	Login string `json:"login"`

	// DisplayName is the name shown to other players in rosters and scoreboards.
	DisplayName string `json:"display_name"`
}
