package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackFindsKnownSkillsCaseInsensitively(t *testing.T) {
	got := Fallback("built dashboards in REACT backed by python services")
	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "React")
}

func TestFallbackMatchesSubstrings(t *testing.T) {
	got := Fallback("Backend work in Python3; frontend in ReactJS.")
	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "React")

	got = Fallback("I write JavaScript")
	assert.Contains(t, got, "JavaScript")
	assert.Contains(t, got, "Java")
}

func TestFallbackMatchesSymbolSkills(t *testing.T) {
	got := Fallback("Languages: C++, C#. Pipelines with CI/CD and Node.js")
	for _, want := range []string{"C++", "C#", "CI/CD", "Node.js"} {
		assert.Contains(t, got, want)
	}
}

func TestFallbackCuePhrases(t *testing.T) {
	text := "Proficient in Terraform, Ansible.\nSkills: Leadership; Go, ab, Public speaking to large technical audiences. Done."
	got := Fallback(text)

	assert.Contains(t, got, "Terraform")
	assert.Contains(t, got, "Leadership")
	assert.NotContains(t, got, "ab", "tokens of two characters or fewer are dropped")
	assert.NotContains(t, got, "Go", "tokens of two characters or fewer are dropped")
	assert.NotContains(t, got, "Public speaking to large technical audiences", "tokens of thirty characters or more are dropped")
}

func TestFallbackDeduplicatesAndIsDeterministic(t *testing.T) {
	text := "Skills: Python, Docker, Python. Experienced in Docker"
	first := Fallback(text)
	second := Fallback(text)

	assert.Equal(t, first, second)
	seen := map[string]int{}
	for _, s := range first {
		seen[s]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, s)
	}
}

func TestFallbackEmptyText(t *testing.T) {
	got := Fallback("   ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
