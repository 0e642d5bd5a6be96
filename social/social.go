// Package social manages mock platform connections. The handshake is
// scripted end to end: it walks real OAuth motions (authorize URL, signed
// connection token) without ever leaving the process, which is enough for
// the dashboard to exercise the full connect/disconnect flow.
package social

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

// Known platform slugs mapped to their display names.
var platforms = map[string]string{
	"tiktok":    models.PlatformTikTok,
	"youtube":   models.PlatformShorts,
	"instagram": models.PlatformReels,
	"github":    models.PlatformGitHub,
}

// PlatformName resolves a URL slug to the platform display name.
func PlatformName(slug string) (string, bool) {
	name, ok := platforms[slug]
	return name, ok
}

// HandshakeStep is one stage of the scripted connection flow, reported back
// to the dashboard with its wall-clock timestamp.
type HandshakeStep struct {
	Step       int       `json:"step"`
	Message    string    `json:"message"`
	FinishedAt time.Time `json:"finished_at"`
}

// handshakeScript is the fixed sequence every connection walks through.
var handshakeScript = []string{
	"Initiating OAuth Flow",
	"Exchanging Authorization Code",
	"Verifying App Installation",
	"Syncing Repository Scopes",
	"Finalizing Secure Tunnel",
}

// stepDelay paces the scripted steps. Tests shrink it to zero.
var stepDelay = 400 * time.Millisecond

// RunHandshake executes the scripted steps in order and returns their
// timestamps.
func RunHandshake() []HandshakeStep {
	steps := make([]HandshakeStep, 0, len(handshakeScript))
	for i, msg := range handshakeScript {
		time.Sleep(stepDelay)
		steps = append(steps, HandshakeStep{
			Step:       i + 1,
			Message:    msg,
			FinishedAt: time.Now().UTC(),
		})
	}
	return steps
}

// AuthorizeURL builds the OAuth authorize URL the flow pretends to visit.
func AuthorizeURL(slug, state string) string {
	conf := oauth2.Config{
		ClientID:    "vidra-dashboard",
		RedirectURL: "https://localhost/social/" + slug + "/callback",
		Scopes:      []string{"publish", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL: fmt.Sprintf("https://auth.%s.example/oauth/authorize", slug),
		},
	}
	return conf.AuthCodeURL(state)
}

// SignConnectionToken issues the signed token stored on the account. The
// token proves the connection came through this instance's handshake.
func SignConnectionToken(secret, platform, username string) (string, error) {
	claims := jwt.MapClaims{
		"platform": platform,
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
