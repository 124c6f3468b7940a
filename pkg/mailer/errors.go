package mailer

import "errors"

// ErrNoRecipient is returned before anything is rendered.
var ErrNoRecipient = errors.New("mailer: no recipient")

// Template errors. ErrTemplateNotFound and ErrLayoutNotFound are always
// wrapped together with ErrRenderFailed by Mailer.Send.
var (
	ErrTemplateNotFound   = errors.New("mailer: template not found")
	ErrLayoutNotFound     = errors.New("mailer: layout not found")
	ErrInvalidFrontmatter = errors.New("mailer: invalid front matter")
	ErrRenderFailed       = errors.New("mailer: render failed")
)

// ErrSendFailed wraps errors returned by the Sender backend.
var ErrSendFailed = errors.New("mailer: send failed")
