package domain

import "strings"

// projectNameSeparators are the characters backend search engines disagree
// on. Splitting on all of them makes the duplicate match key invariant to
// separator style.
const projectNameSeparators = " \t\n\r-.,;:|/_"

// NormalizeProjectName splits name on whitespace and common separator
// characters, drops empty fragments, and rejoins with commas.
// "Alpha Beta", "Alpha-Beta", "Alpha.Beta", and "Alpha_Beta" all normalize
// to "Alpha,Beta".
func NormalizeProjectName(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return strings.ContainsRune(projectNameSeparators, r)
	})
	return strings.Join(fields, ",")
}

// SearchKey builds the duplicate-detection key for a submission: the
// submitter email plus the normalized project name. Existing project folders
// are matched by this substring.
func SearchKey(email, projectName string) string {
	return email + "," + NormalizeProjectName(projectName)
}
