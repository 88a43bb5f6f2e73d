package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pitch-league/internal/domain/user"
	"github.com/riskibarqy/pitch-league/internal/usecase"
)

// Verifier resolves bearer tokens from a fixed token to user id table.
type Verifier struct {
	users map[string]string
}

func NewVerifier(tokens map[string]string) *Verifier {
	users := make(map[string]string, len(tokens))
	for token, userID := range tokens {
		token = strings.TrimSpace(token)
		userID = strings.TrimSpace(userID)
		if token == "" || userID == "" {
			continue
		}
		users[token] = userID
	}
	return &Verifier{users: users}
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	userID, ok := v.users[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: userID}, nil
}
