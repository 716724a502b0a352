package commit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// MaxMessageLength bounds the commit message.
const MaxMessageLength = 1000

// ChangeInput is one resource change of a new commit.
type ChangeInput struct {
	Type            domain.ChangeType
	IsUpdate        bool
	SecretVersionID *uuid.UUID
	FolderVersionID *uuid.UUID
}

// CreateCommitInput holds the parameters for creating a commit.
type CreateCommitInput struct {
	FolderID      uuid.UUID
	ActorType     domain.ActorType
	ActorMetadata map[string]any
	Message       *string
	Changes       []ChangeInput
}

// Validate checks all fields and collects all errors.
func (i CreateCommitInput) Validate() error {
	var errs []domain.FieldError

	if i.FolderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "folder_id", Message: "required"})
	}
	if !i.ActorType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "actor_type", Message: "unknown actor type"})
	}
	if i.Message != nil && len(*i.Message) > MaxMessageLength {
		errs = append(errs, domain.FieldError{
			Field:   "message",
			Message: fmt.Sprintf("max %d characters", MaxMessageLength),
		})
	}
	if len(i.Changes) == 0 {
		errs = append(errs, domain.FieldError{Field: "changes", Message: "at least one change is required"})
	}

	for idx, c := range i.Changes {
		field := fmt.Sprintf("changes[%d]", idx)
		if !c.Type.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".type", Message: "unknown change type"})
		}
		if (c.SecretVersionID == nil) == (c.FolderVersionID == nil) {
			errs = append(errs, domain.FieldError{
				Field:   field,
				Message: "exactly one of secret_version_id and folder_version_id is required",
			})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
