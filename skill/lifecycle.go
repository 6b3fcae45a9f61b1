package skill

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
)

// securityHashHeader carries the HMAC signature proving an unlink
// notification came from this skill. The USL API verifies it against the
// shared client secret.
const securityHashHeader = "X-Alexa-Security-Hash"

// accountLinked notifies the USL API that a user finished account linking,
// associating their Alexa user id with the linked USL account.
func (s *Skill) accountLinked(ctx context.Context, envelope *RequestEnvelope) (*ResponseEnvelope, error) {
	userID := envelope.Context.System.User.UserID
	if userID == "" {
		return nil, errors.New("account linked event has no user id")
	}

	token := envelope.accessToken()
	if token == "" {
		return nil, errors.New("account linked event has no access token")
	}

	s.logger.WithField("user_id", userID).Info("Received new account link event; updating user id")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(s.cfg.USLBaseURL, s.cfg.LinkRoute), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build link request: %w", err)
	}

	query := req.URL.Query()
	query.Set("userId", userID)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+token)

	if err := s.send(req); err != nil {
		return nil, fmt.Errorf("failed to link account: %w", err)
	}

	return emptyResponse(), nil
}

// skillDisabled notifies the USL API that a user disabled the skill so it
// can unlink their account. The user's account-linking token is already
// revoked at this point, so the request authenticates with a security hash
// signed by the skill's client secret instead.
func (s *Skill) skillDisabled(ctx context.Context, envelope *RequestEnvelope) (*ResponseEnvelope, error) {
	userID := envelope.Context.System.User.UserID
	if userID == "" {
		return nil, errors.New("skill disabled event has no user id")
	}

	s.logger.WithField("user_id", userID).Info("User has disabled this skill; sending notification to central API")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, joinURL(s.cfg.USLBaseURL, s.cfg.UnlinkRoute), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build unlink request: %w", err)
	}

	query := req.URL.Query()
	query.Set("userId", userID)
	req.URL.RawQuery = query.Encode()
	req.Header.Set(securityHashHeader, s.securityHash())

	if err := s.send(req); err != nil {
		return nil, fmt.Errorf("failed to unlink account: %w", err)
	}

	return emptyResponse(), nil
}

// securityHash signs the skill's client id with its client secret.
func (s *Skill) securityHash() string {
	mac := hmac.New(sha256.New, []byte(s.cfg.ClientSecret))
	mac.Write([]byte(s.cfg.ClientID))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Skill) send(req *http.Request) error {
	resp, err := s.opts.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Path)
	}

	return nil
}
