package skills

import (
	"regexp"
	"strings"
)

// knownSkills is matched as a case-insensitive substring of the resume text,
// so "Python3" counts as Python; matches are reported with the casing listed
// here.
var knownSkills = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C#", "C++", "PHP", "Ruby", "Swift",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring",
	"HTML", "CSS", "SASS", "LESS", "Bootstrap", "Tailwind",
	"MongoDB", "MySQL", "PostgreSQL", "SQL Server", "Oracle", "Firebase",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"Git", "SVN", "Agile", "Scrum", "Kanban", "Jira", "Confluence",
	"REST API", "GraphQL", "SOAP", "Microservices", "Serverless",
	"Machine Learning", "AI", "Data Science", "Big Data", "Data Analytics",
	"Unity", "Unreal Engine", "Android", "iOS", "React Native", "Flutter",
}

var knownSkillsLower = lowerAll(knownSkills)

var cuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)experienced in\s+([A-Za-z0-9#+\s]+)`),
	regexp.MustCompile(`(?i)proficient in\s+([A-Za-z0-9#+\s]+)`),
	regexp.MustCompile(`(?i)skills:([^.]*).`),
	regexp.MustCompile(`(?i)technologies:([^.]*).`),
}

var tokenSeparator = regexp.MustCompile(`[,;]`)

func lowerAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Fallback extracts skills without any external call. Identical input always
// yields identical output.
func Fallback(text string) []string {
	found := make([]string, 0, 16)
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)
	for i, skill := range knownSkillsLower {
		if strings.Contains(lower, skill) {
			found = append(found, knownSkills[i])
		}
	}

	for _, re := range cuePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			for _, token := range tokenSeparator.Split(strings.TrimSpace(m[1]), -1) {
				token = strings.TrimSpace(token)
				if n := len([]rune(token)); n > 2 && n < 30 {
					found = append(found, token)
				}
			}
		}
	}
	return dedupe(found)
}
