package generator

// BuildUnderwritePrompt returns the pre-due-diligence screening prompt for
// the submitted document's extracted text.
func BuildUnderwritePrompt(documentText string) string {
	return `As an industry expert conducting initial pre-due diligence screening, provide only a direct structured analysis without any introductory sentences for the following investment opportunity. Begin immediately with the analysis sections using the information from these quotations and your comprehensive market knowledge:

` + documentText + `

1. LACK OF DURABLE COMPETITIVE ADVANTAGES

Technological Differentiation
- [Point 1]
- [Point 2]
- [Point 3]

Market Position
- [Point 1]
- [Point 2]
- [Point 3]

Economic Moat Factors
- [Point 1]
- [Point 2]
- [Point 3]

Revenue Security
- [Point 1]
- [Point 2]
- [Point 3]

Regulatory & Environmental
- [Point 1]
- [Point 2]
- [Point 3]

2. INVESTOR RED FLAGS

Investment Structure
- [Point 1]
- [Point 2]
- [Point 3]

Management & Execution
- [Point 1]
- [Point 2]
- [Point 3]

Financial Considerations
- [Point 1]
- [Point 2]
- [Point 3]

Market & Competition
- [Point 1]
- [Point 2]
- [Point 3]

Due Diligence Priorities
- [Point 1]
- [Point 2]
- [Point 3]

CONCLUSION

Provide a 2-3 sentence conclusion highlighting primary competitive vulnerabilities, most critical investor concerns, and recommendation on proceeding with full due diligence. Format as a single paragraph without bullet points.

Formatting Rules:
- Use consistent hyphen (-) for all bullet points
- Leave one blank line between major sections
- No asterisks or other bullet point styles
- No indentation for bullet points
- Capitalize all major section headers
- Use one blank line between subsections
- Format conclusion as a single paragraph without bullets`
}

// Mandatory questions every KIQ worksheet opens with, verbatim.
const (
	MandatoryQuestion1 = "What are they offering as compensation for the contribution of our efforts, networks and capital introduction sources?"
	MandatoryQuestion2 = "Does the company have any open litigation, or threats of litigation for any unresolved open matters as disputes with counter parts on agreements?"
)

// BuildKIQPrompt returns the key-investor-questions prompt. Input is the
// underwrite analysis text, not the original document.
func BuildKIQPrompt(underwriteText string) string {
	return `Based on the following pre-due diligence analysis findings:

` + underwriteText + `

Generate exactly 15 due diligence questions, including the two mandatory questions below. Each question should be followed by an 'A:' line for responses. Begin with these mandatory questions:

1. ` + MandatoryQuestion1 + `
A:

2. ` + MandatoryQuestion2 + `
A:

Generate the remaining 13 questions following this distribution:

WEAKNESSES INVESTIGATION (3 questions)
- Questions targeting competitive disadvantages identified in the analysis
- Queries about gaps in market positioning
- Questions about operational vulnerabilities

COMPETITIVE ADVANTAGE VERIFICATION (3 questions)
- Questions challenging claimed market differentiators
- Queries about sustainability of advantages
- Questions about defensive moat strength

FINANCIAL SCRUTINY (3 questions)
- Questions about projection assumptions
- Queries about capital structure decisions
- Questions about revenue model sustainability

RISK MITIGATION (2 questions)
- Questions about identified risk factors
- Questions about risk management strategies

DUE DILIGENCE GAPS (2 questions)
- Questions about missing critical information
- Questions about verification needs

Format all 15 questions as a single numbered list (1-15), each followed by 'A:' on a new line. Begin immediately with questions without any introduction or context statements.`
}
