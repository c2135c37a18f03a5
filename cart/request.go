package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/session"
	"go.uber.org/zap"
)

// identity is the credential a single request is sent with. Exactly one of
// the fields is set, or neither for unauthenticated auth calls.
type identity struct {
	token     string
	sessionID string
}

// currentIdentity picks the bearer token when it is live, otherwise the
// anonymous session id, creating one on first use.
func (s *Service) currentIdentity() (identity, error) {
	token, _, err := s.store.Get(session.KeyAuthToken)
	if err != nil {
		return identity{}, err
	}
	if session.IsTokenLive(token, s.now()) {
		return identity{token: token}, nil
	}

	sessionID, ok, err := s.store.Get(session.KeySessionID)
	if err != nil {
		return identity{}, err
	}
	if !ok || sessionID == "" {
		sessionID = session.NewID()
		if err := s.store.Set(session.KeySessionID, sessionID); err != nil {
			return identity{}, err
		}
	}
	return identity{sessionID: sessionID}, nil
}

// do sends one JSON request and decodes a 2xx body into out.
func (s *Service) do(ctx context.Context, id identity, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build %s %s: %v", ErrNetwork, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case id.token != "":
		req.Header.Set("Authorization", "Bearer "+id.token)
	case id.sessionID != "":
		req.Header.Set(session.Header, id.sessionID)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrNetwork, method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && id.token != "" {
		s.dropToken(id.token)
		return fmt.Errorf("%w: %s %s", ErrSessionExpired, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure models.ErrorResponse
		if json.Unmarshal(data, &failure) == nil && failure.Errors != nil {
			return &BusinessError{Status: resp.StatusCode, Message: failure.Message, Errors: failure.Errors}
		}
		return fmt.Errorf("%w: %s %s: status %d", ErrNetwork, method, path, resp.StatusCode)
	}

	if id.sessionID != "" {
		s.adoptSessionID(id.sessionID, resp.Header.Get(session.Header))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrNetwork, method, path, err)
	}
	return nil
}

// adoptSessionID stores a server-rotated session id. It only replaces the id
// the request was sent with, so an id dropped by a migration stays dropped.
func (s *Service) adoptSessionID(sent, issued string) {
	if issued == "" || issued == sent {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok, err := s.store.Get(session.KeySessionID)
	if err != nil || !ok || current != sent {
		return
	}
	if err := s.store.Set(session.KeySessionID, issued); err != nil {
		s.logger.Warn("⚠️ failed to persist rotated session id", zap.Error(err))
		return
	}
	s.logger.Debug("🔄 session id rotated by server", zap.String("session_id", issued))
}

// dropToken forgets a bearer token the server refused, unless a newer login
// already replaced it. Later calls fall back to an anonymous session.
func (s *Service) dropToken(sent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok, err := s.store.Get(session.KeyAuthToken)
	if err != nil || !ok || current != sent {
		return
	}
	if err := s.store.Remove(session.KeyAuthToken); err != nil {
		s.logger.Warn("⚠️ failed to drop rejected token", zap.Error(err))
		return
	}
	s.logger.Info("🔒 bearer token rejected by server, logged out")
}
