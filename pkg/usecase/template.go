package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/store"
	"github.com/secmon-lab/issuehub/pkg/utils/errutil"
)

// SaveTemplate stores a custom template under user:{userID}:template:{name}
// with the extended TTL. The body is kept as raw JSON; its contents are
// never inspected here.
func (x *UseCase) SaveTemplate(ctx context.Context, userID types.UserID, name types.TemplateName, body json.RawMessage) bool {
	if len(body) == 0 || !json.Valid(body) {
		errutil.HandleError(ctx, "rejecting template", goerr.Wrap(types.ErrValidationFailed, "template body is not valid JSON",
			goerr.V("user_id", userID),
			goerr.V("name", name),
		))
		return false
	}

	if err := x.clients.KeyedStore().Put(ctx, templateKey(userID, name), body, x.templateTTL()); err != nil {
		errutil.HandleError(ctx, "failed to save template", err)
		return false
	}

	return true
}

// ListTemplates returns the user's custom templates keyed by name. A key
// that vanishes between the scan and the read is skipped, not an error.
func (x *UseCase) ListTemplates(ctx context.Context, userID types.UserID) map[string]json.RawMessage {
	s := x.clients.KeyedStore()

	keys, err := s.Keys(ctx, templateKey(userID, "*"))
	if err != nil {
		errutil.HandleError(ctx, "failed to list template keys", err)
		return map[string]json.RawMessage{}
	}

	templates := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, err := s.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				errutil.HandleError(ctx, "failed to get template", err)
			}
			continue
		}

		name := key[strings.LastIndex(key, ":")+1:]
		templates[name] = raw
	}

	return templates
}

// resolveTemplate finds a template by name, preferring the user's custom
// templates over the predefined catalog.
func (x *UseCase) resolveTemplate(ctx context.Context, userID types.UserID, name types.TemplateName) *model.IssueTemplate {
	if userID != "" {
		raw, err := x.clients.KeyedStore().Get(ctx, templateKey(userID, name))
		if err == nil {
			var tmpl model.IssueTemplate
			if err := json.Unmarshal(raw, &tmpl); err == nil {
				return &tmpl
			}
			errutil.HandleError(ctx, "stored template is not a valid template", goerr.Wrap(types.ErrValidationFailed, "unmarshal failed",
				goerr.V("user_id", userID),
				goerr.V("name", name),
			))
		} else if !errors.Is(err, store.ErrNotFound) {
			errutil.HandleError(ctx, "failed to look up template", err)
		}
	}

	if tmpl, ok := model.PredefinedTemplates()[string(name)]; ok {
		return tmpl
	}

	return nil
}
