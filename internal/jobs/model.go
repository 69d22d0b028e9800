package jobs

// JobListing is a normalized posting returned to clients.
type JobListing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyLink   string `json:"applyLink"`
}

const (
	DefaultCompany     = "Unknown Company"
	DefaultLocation    = "Remote/Unspecified"
	DefaultDescription = "No description provided"
)

// MaxQuerySkills caps how many skills are sent to the search API.
const MaxQuerySkills = 5

// SearchOptions overrides client defaults for a single search. Zero values
// keep the defaults.
type SearchOptions struct {
	Country string
	Limit   int
}
