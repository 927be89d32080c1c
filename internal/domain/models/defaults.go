package models

// Fallback copy used when a CMS document or field is missing.

// Site-wide defaults.
const (
	DefaultSiteName        = "StrataPapers"
	DefaultSiteDescription = "Free past papers, mark schemes and expert tutoring for GCSE, IGCSE, A Level and IB students."
	DefaultCopyright       = "© {year} StrataPapers. All rights reserved."
)

// DefaultNavLinks are the header links.
var DefaultNavLinks = []NavLink{
	{Label: "Subjects", URL: "/#subjects"},
	{Label: "Exam Boards", URL: "/#exam-boards"},
	{Label: "Why Us", URL: "/#why-choose"},
	{Label: "FAQ", URL: "/#faq"},
	{Label: "Contact", URL: "/#contact"},
}

// DefaultHeaderCTA is the header call-to-action button.
var DefaultHeaderCTA = Button{Text: "Book a Tutor", URL: "/#contact"}

// Hero defaults.
const (
	DefaultHeroBadge       = "Trusted by students worldwide"
	DefaultHeroTitle       = "Ace Your Exams with"
	DefaultHeroHighlight   = "Past Papers"
	DefaultHeroDescription = "Practise with real exam papers and mark schemes from every major exam board, and get one-to-one help from experienced tutors."
)

var (
	DefaultHeroPrimaryButton   = Button{Text: "Browse Subjects", URL: "/#subjects"}
	DefaultHeroSecondaryButton = Button{Text: "Find a Tutor", URL: "/#contact"}
	DefaultHeroStats           = []HeroStat{
		{Value: "10,000+", Label: "Past papers"},
		{Value: "50+", Label: "Subjects"},
		{Value: "98%", Label: "Student satisfaction"},
	}
)

// Subjects and exam boards section defaults.
const (
	DefaultSubjectsTitle      = "Browse by Subject"
	DefaultSubjectsSubtitle   = "Past papers and mark schemes organised by subject and exam board."
	DefaultSubjectsViewLabel  = "View papers"
	DefaultSubjectsEmpty      = "Subjects are coming soon."
	DefaultExamBoardsTitle    = "Exam Boards We Cover"
	DefaultExamBoardsSubtitle = "Papers from the boards your school uses."
	DefaultExamBoardsVisit    = "Visit website"
	DefaultExamBoardsEmpty    = "Exam boards are coming soon."
)

// Why-choose defaults.
const (
	DefaultWhyChooseTitle    = "Why Students Choose Us"
	DefaultWhyChooseSubtitle = "Everything you need to prepare with confidence."
)

var DefaultFeatures = []Feature{
	{Icon: "file-text", Title: "Real Exam Papers", Description: "Official past papers with matching mark schemes."},
	{Icon: "graduation-cap", Title: "Expert Tutors", Description: "Qualified tutors who know the syllabus inside out."},
	{Icon: "clock", Title: "Flexible Scheduling", Description: "Lessons that fit around school and revision."},
	{Icon: "target", Title: "Focused Practice", Description: "Filter by year, session and paper type to target weak spots."},
}

// FAQ defaults.
const (
	DefaultFAQTitle    = "Frequently Asked Questions"
	DefaultFAQSubtitle = "Answers to the questions we hear most."
)

var DefaultFAQItems = []FAQItem{
	{Question: "Are the past papers free?", Answer: "<p>Yes. Every past paper and mark scheme on the site is free to download.</p>"},
	{Question: "Which exam boards do you cover?", Answer: "<p>We cover Cambridge, Edexcel, AQA, OCR and the IB, with more added regularly.</p>"},
	{Question: "How do I book a tutor?", Answer: "<p>Fill in the contact form and we will match you with a tutor within one working day.</p>"},
}

// Testimonials defaults.
const (
	DefaultTestimonialsTitle    = "What Our Students Say"
	DefaultTestimonialsSubtitle = "Real results from real students."
)

// Contact form defaults.
const (
	DefaultContactTitle          = "Get in Touch"
	DefaultContactSubtitle       = "Tell us what you need help with and we will find the right tutor for you."
	DefaultContactSuccessMessage = "Thank you! Your inquiry has been received. We will be in touch shortly."
	DefaultAdminSubject          = "New Contact Form Submission"
	DefaultAutoReplySubject      = "Thank you for contacting us"
	DefaultAutoReplyBody         = "<p>Thank you for reaching out. We have received your inquiry and one of our team will contact you within 24 hours.</p>"
)

var DefaultContactLabels = ContactFormLabels{
	FullName:        "Full name",
	Country:         "Country",
	Email:           "Email address",
	Phone:           "Phone number",
	TutoringDetails: "What do you need help with?",
	HourlyBudget:    "Hourly budget",
	Submit:          "Send inquiry",
}

// Footer defaults.
const DefaultFooterDescription = "Past papers, mark schemes and tutoring for students preparing for their exams."

var DefaultFooterColumns = []FooterColumn{
	{Title: "Explore", Links: []NavLink{
		{Label: "Subjects", URL: "/#subjects"},
		{Label: "Exam Boards", URL: "/#exam-boards"},
		{Label: "FAQ", URL: "/#faq"},
	}},
	{Title: "Support", Links: []NavLink{
		{Label: "Contact", URL: "/#contact"},
	}},
}

// Subject page defaults.
const (
	DefaultSubjectTitleSuffix    = "Past Papers"
	DefaultSubjectDescription    = "Download past papers and mark schemes, filter by year, session and paper type."
	DefaultResourcesBadge        = "{count} Resources Available"
	DefaultExamBoardBadge        = "All Exam Boards"
	DefaultDatabaseTitle         = "Past Papers Database"
	DefaultShowingText           = "Showing {filtered} of {total} papers"
	DefaultYearLabel             = "Year"
	DefaultSessionLabel          = "Session"
	DefaultTypeLabel             = "Paper Type"
	DefaultAllLabel              = "All"
	DefaultResetLabel            = "Reset filters"
	DefaultEmptyText             = "No papers match the selected filters."
	DefaultQuestionPaperLabel    = "Question Paper"
	DefaultMarkSchemeLabel       = "Mark Scheme"
	DefaultQuickStatsTitle       = "Quick Stats"
	DefaultTotalPapersLabel      = "Total Papers"
	DefaultYearsCoveredLabel     = "Years Covered"
	DefaultLatestYearLabel       = "Latest Year"
	DefaultTutorPromoTitle       = "Need Extra Help?"
	DefaultTutorPromoDescription = "Work through past papers with an experienced tutor."
)

var (
	DefaultSidebarPrimary   = Button{Text: "Book a Free Trial", URL: "/#contact"}
	DefaultSidebarSecondary = Button{Text: "Browse All Subjects", URL: "/#subjects"}
	DefaultTutorPromoButton = Button{Text: "Find a Tutor", URL: "/#contact"}
)

// Exam board page defaults.
const (
	DefaultBoardsHeroSuffix      = "Exam Boards"
	DefaultBoardsHeroDescription = "Choose your exam board to find the right past papers."
	DefaultBoardsTitle           = "Available Exam Boards"
	DefaultBoardsSubtitle        = "Select a board to see its papers."
	DefaultViewPapersLabel       = "View papers"
	DefaultCTATitle              = "Not sure which board you need?"
	DefaultCTADescription        = "Our tutors can help you find the right papers for your course."
)

var DefaultCTAButton = Button{Text: "Talk to a Tutor", URL: "/#contact"}
