package resumes

import "time"

// Resume is the persisted outcome of one successful intake.
type Resume struct {
	ID         string
	Skills     []string
	FileName   string
	UploadedAt time.Time
}
