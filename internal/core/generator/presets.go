package generator

// Preset is a canned project brief.
type Preset struct {
	Description string
	Budget      string
}

// Presets are the built-in briefs, keyed by template name.
var Presets = map[string]Preset{
	"web-dev": {
		Description: "I need a modern, responsive website with the following features:\n\n" +
			"• Professional landing page with hero section\n" +
			"• About us and services pages\n" +
			"• Contact form with email integration\n" +
			"• Mobile-responsive design\n" +
			"• SEO optimization\n" +
			"• Fast loading speed\n" +
			"• Modern UI/UX design\n\n" +
			"Target audience: Business professionals and potential clients\n" +
			"Preferred tech stack: React.js, Node.js, MongoDB",
		Budget: BudgetMedium,
	},
	"mobile-app": {
		Description: "I need a cross-platform mobile application with:\n\n" +
			"• User authentication and profiles\n" +
			"• Real-time data synchronization\n" +
			"• Push notifications\n" +
			"• In-app messaging\n" +
			"• Payment gateway integration\n" +
			"• Analytics dashboard\n" +
			"• Offline mode support\n\n" +
			"Platforms: iOS and Android\n" +
			"Tech stack: React Native or Flutter",
		Budget: BudgetLarge,
	},
	"ai-solution": {
		Description: "I need an AI-powered solution with:\n\n" +
			"• Machine learning model integration\n" +
			"• Natural language processing\n" +
			"• Predictive analytics\n" +
			"• Custom AI chatbot\n" +
			"• Data visualization dashboard\n" +
			"• API integration\n" +
			"• Scalable cloud infrastructure\n\n" +
			"Use case: Business automation and customer insights\n" +
			"Tech stack: Python, TensorFlow, Google Cloud AI",
		Budget: BudgetEnterprise,
	},
	"consulting": {
		Description: "I need professional consulting services for:\n\n" +
			"• Business strategy and planning\n" +
			"• Digital transformation roadmap\n" +
			"• Technology stack evaluation\n" +
			"• Process optimization\n" +
			"• Team training and workshops\n" +
			"• Implementation support\n" +
			"• Ongoing advisory services\n\n" +
			"Duration: 3-6 months\n" +
			"Deliverables: Strategy documents, implementation plan, training materials",
		Budget: BudgetLarge,
	},
}
