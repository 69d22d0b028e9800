package resumes

import "resume-jobmatch/internal/jobs"

const (
	msgProcessed         = "Resume processed successfully"
	msgProcessedNoSkills = "Resume processed, but no skills were detected"
	skillsQueryHint      = "Please provide skills as query parameters (e.g., ?skills=JavaScript,React,Node.js)"
	unresolvableHint     = "The resume ID is invalid or the database is unavailable. Please provide skills as query parameters."
)

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	Message  string   `json:"message"`
	ResumeID string   `json:"resumeId"`
	Skills   []string `json:"skills"`
	DBStatus string   `json:"dbStatus" enums:"success,failed"`
}

// SkillsResponse lists the skills stored for a resume.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// JobsResponse pairs the skills searched with the listings found.
type JobsResponse struct {
	Skills []string          `json:"skills"`
	Jobs   []jobs.JobListing `json:"jobs"`
}

type jobsQuery struct {
	Skills  string `form:"skills"`
	Country string `form:"country" binding:"omitempty,len=2,alpha"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

func toUploadResponse(in Intake) UploadResponse {
	msg := msgProcessed
	if len(in.Skills) == 0 {
		msg = msgProcessedNoSkills
	}
	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}
	return UploadResponse{
		Message:  msg,
		ResumeID: in.Persist.ID,
		Skills:   skills,
		DBStatus: in.Persist.DBStatus(),
	}
}
