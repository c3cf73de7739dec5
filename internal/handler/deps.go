package handler

import (
	"emoteguessr/internal/app/game"
	"emoteguessr/internal/app/twitch"
	"emoteguessr/internal/configs"
)

type AppDeps struct {
	Directory *game.Directory
	Registry  *game.Registry
	Twitch    *twitch.Client
	Config    *configs.AppConfig

	// SigningKey is the raw HMAC secret for issuing and verifying identity tokens.
	SigningKey []byte
}
