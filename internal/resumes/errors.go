package resumes

import "errors"

var (
	// ErrNotFound indicates no resume exists for the identifier.
	ErrNotFound = errors.New("resume not found")

	// ErrStoreUnavailable indicates the backing store could not be reached.
	ErrStoreUnavailable = errors.New("resume store unavailable")

	// ErrMissingFile indicates the upload carried no file.
	ErrMissingFile = errors.New("no file uploaded")

	// ErrInvalidFileType indicates an extension other than .pdf or .docx.
	ErrInvalidFileType = errors.New("only PDF and DOCX files are allowed")

	// ErrEmptyText indicates the document decoded to whitespace only.
	ErrEmptyText = errors.New("no text content found in file")
)

// Job-skill resolution failures. Each maps to a distinct client response.
var (
	// ErrNoResumeID indicates a missing id and no fallback skills.
	ErrNoResumeID = errors.New("invalid resume ID and no skills provided")

	// ErrNoSkillsAvailable indicates a synthetic id and no fallback skills.
	ErrNoSkillsAvailable = errors.New("no skills available")

	// ErrUnresolvable indicates a persisted-looking id that could not be
	// loaded and no fallback skills.
	ErrUnresolvable = errors.New("resume not found and no fallback skills provided")

	// ErrNoSkillsToMatch indicates the resolved skill set is empty.
	ErrNoSkillsToMatch = errors.New("no skills found to match jobs")
)
