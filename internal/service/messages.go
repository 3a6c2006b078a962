package service

import (
	"fmt"

	"dealflow/internal/config"
	"dealflow/internal/domain"
)

// clientSubject returns the subject line for the client success message.
func clientSubject(company *config.CompanyConfig) string {
	return fmt.Sprintf("Your %s Deal Submission", company.Name)
}

// clientBody builds the client success message carrying both document links.
func clientBody(company *config.CompanyConfig, sub *domain.DealSubmission, underwriteLink, kiqLink string) string {
	return fmt.Sprintf(`Hi %s,

Thank you for your submission. I'd like to provide you with two important documents which were built by our Project Optimization Modules for your review and consideration:

The first attachment is our "%s Underwrite" document, which presents a hyper-critical analysis of your submitted project. We've specifically designed this analysis to mirror the scrutinizing perspective that potential investors would likely take when evaluating your deal. This thorough examination should provide valuable insights into how your project might be perceived by investment stakeholders.

Additionally, you'll find the "KIQ_1" document which contains essential questions for your team to address regarding the deal.

Once you've completed the KIQ (Key Investor Questions) worksheet, if you're interested in learning more about our services and potentially engaging with our full suite of Project Optimization Modules, we would be happy to schedule a call to discuss next steps.

%s Underwrite Analysis: %s

Key Investor Questions (KIQ_1): %s

Best regards,

%s | %s | %s
%s`,
		sub.FirstName,
		company.Name,
		company.Name, underwriteLink,
		kiqLink,
		company.SignatureName, company.SignatureTitle, company.Name,
		company.PhoneNumber,
	)
}

// internalSubject is the fixed subject for internal reviewer notifications.
const internalSubject = "NEW DEAL SUBMITTED"

// internalBody builds the internal notification summarizing the submission.
func internalBody(sub *domain.DealSubmission, projectLink, underwriteLink, kiqLink string) string {
	return fmt.Sprintf(`New Deal Submission from: %s

Project Name: %s

Underwriting Report: %s

KIQ's: %s

Project Folder: %s`,
		sub.Email,
		sub.ProjectName,
		underwriteLink,
		kiqLink,
		projectLink,
	)
}

// duplicateSubject returns the subject line for the duplicate notice.
func duplicateSubject(company *config.CompanyConfig) string {
	return fmt.Sprintf("Duplicate Project Submission Detected - %s", company.Name)
}

// duplicateBody builds the duplicate notice pointing the submitter at support.
func duplicateBody(company *config.CompanyConfig, sub *domain.DealSubmission) string {
	return fmt.Sprintf(`Dear %s,

We've detected that you've already submitted a project with this name. To maintain accurate records in our system, please submit each project only once.

If you believe this is an error or need to submit an updated version, please contact our support team at %s.

Best regards,

%s`,
		sub.FirstName,
		company.SupportURL,
		company.Name,
	)
}
