// Package pipeline implements the authenticated request pipeline: payload
// validation, token verification, the store call chain for each operation,
// and the deterministic mapping of every outcome to an HTTP response.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/codeblock/rest-service/internal/store"
	"github.com/codeblock/rest-service/internal/token"
)

// Pipeline orchestrates the validator, the stores, and the token manager
// for the four operations. Each operation is a linear chain that stops at
// the first failure; no later step runs once an earlier one has failed.
// The injected collaborators are long-lived and shared across requests.
type Pipeline struct {
	users    store.CredentialStore
	items    store.ItemStore
	issuer   token.Issuer
	verifier token.Verifier
	logger   *zap.Logger
}

// New creates a Pipeline with the given collaborators.
func New(
	users store.CredentialStore,
	items store.ItemStore,
	issuer token.Issuer,
	verifier token.Verifier,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		users:    users,
		items:    items,
		issuer:   issuer,
		verifier: verifier,
		logger:   logger,
	}
}

// Register checks login uniqueness and creates the user.
//
// The existence check and the create are two independent store calls, not a
// transaction: a login created in between is only caught when the backing
// store enforces uniqueness itself (the PostgreSQL store does, the original
// document store did not).
func (p *Pipeline) Register(ctx context.Context, payload map[string]any) Response {
	fields, fail := extractFields(payload, fieldLogin, fieldPassword)
	if fail != nil {
		return p.fail(OpRegister, fail)
	}
	login := fields[fieldLogin]

	exists, err := p.users.ExistsLogin(ctx, login)
	if err != nil {
		return p.fail(OpRegister, storeFailure(err))
	}
	if exists {
		return p.fail(OpRegister, &Failure{Kind: KindDuplicateLogin})
	}

	user, err := p.users.CreateUser(ctx, login, fields[fieldPassword])
	if err != nil {
		if errors.Is(err, store.ErrDuplicateLogin) {
			return p.fail(OpRegister, &Failure{Kind: KindDuplicateLogin})
		}
		return p.fail(OpRegister, storeFailure(err))
	}

	p.logger.Debug("user registered",
		zap.String("login", login),
		zap.String("user_id", user.ID),
	)

	return Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("User: '%s' registered successfully", login),
	}
}

// Login matches the credentials and issues a token carrying the user id.
// User-not-found and wrong-password are deliberately one outcome so the
// response never reveals which part was wrong.
func (p *Pipeline) Login(ctx context.Context, payload map[string]any) Response {
	fields, fail := extractFields(payload, fieldLogin, fieldPassword)
	if fail != nil {
		return p.fail(OpLogin, fail)
	}

	user, err := p.users.FindUser(ctx, fields[fieldLogin], fields[fieldPassword])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return p.fail(OpLogin, &Failure{Kind: KindInvalidCredentials})
		}
		return p.fail(OpLogin, storeFailure(err))
	}

	p.logger.Debug("generating token", zap.String("user_id", user.ID))

	tokenString, err := p.issuer.Issue(user.ID)
	if err != nil {
		return p.fail(OpLogin, storeFailure(err))
	}

	return Response{
		Status:  http.StatusOK,
		Message: "Token obtained successfully",
		Body:    map[string]string{"token": tokenString},
	}
}

// SaveItem verifies the bearer token, validates the title field, and
// persists an item owned by the token's user.
func (p *Pipeline) SaveItem(ctx context.Context, rawToken string, payload map[string]any) Response {
	userID, fail := p.authenticate(rawToken)
	if fail != nil {
		return p.fail(OpSaveItem, fail)
	}

	fields, fail := extractFields(payload, fieldTitle)
	if fail != nil {
		return p.fail(OpSaveItem, fail)
	}
	title := fields[fieldTitle]

	itemID, err := p.items.CreateItem(ctx, title, userID)
	if err != nil {
		return p.fail(OpSaveItem, storeFailure(err))
	}

	p.logger.Info("item saved",
		zap.String("title", title),
		zap.String("item_id", itemID),
	)

	return Response{
		Status:  http.StatusNoContent,
		Message: "Item created successfully",
	}
}

// ListItems verifies the bearer token and returns the caller's items in
// store order, without the owning user id.
func (p *Pipeline) ListItems(ctx context.Context, rawToken string) Response {
	userID, fail := p.authenticate(rawToken)
	if fail != nil {
		return p.fail(OpListItems, fail)
	}

	records, err := p.items.ListItems(ctx, userID)
	if err != nil {
		return p.fail(OpListItems, storeFailure(err))
	}

	return Response{
		Status:  http.StatusOK,
		Message: "Items successfully retrieved",
		Body:    records,
	}
}

// authenticate verifies the token and extracts the user id claim. A token
// that fails verification is Unauthenticated; a valid token without the
// claim is a distinct failure mapped alongside field-validation errors.
func (p *Pipeline) authenticate(rawToken string) (string, *Failure) {
	userID, err := p.verifier.Verify(rawToken)
	if err != nil {
		return "", &Failure{Kind: KindUnauthenticated, Cause: err}
	}
	if userID == "" {
		return "", &Failure{Kind: KindMissingUserIDClaim}
	}

	p.logger.Debug("user authenticated", zap.String("user_id", userID))

	return userID, nil
}

// fail logs the failure at the level its kind warrants and maps it to the
// HTTP response. Validation and authorization failures are expected client
// mistakes (debug), business-rule failures are common outcomes (warn), and
// only genuine store failures are errors.
func (p *Pipeline) fail(op Op, f *Failure) Response {
	resp := mapFailure(op, f)

	switch f.Kind {
	case KindMissingBody, KindMissingField, KindMissingUserIDClaim, KindUnauthenticated:
		p.logger.Debug(resp.Message,
			zap.String("operation", string(op)),
			zap.Error(f.Cause),
		)
	case KindDuplicateLogin, KindInvalidCredentials:
		p.logger.Warn(resp.Message, zap.String("operation", string(op)))
	default:
		p.logger.Error(resp.Message,
			zap.String("operation", string(op)),
			zap.Error(f.Cause),
		)
	}

	return resp
}
