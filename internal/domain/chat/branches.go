package chat

// Canned branch responses. Pure data, no provider calls.

const emergencyText = "🚨 **ELECTRICAL EMERGENCY**\n" +
	"**⚠️ CALL US IMMEDIATELY ⚠️**\n\n" +
	"📞   **(404) 555-1212**\n\n" +
	"**🛡️ SAFETY FIRST:**\n\n" +
	"• 🔌 Turn off power at the main breaker (if safe)\n" +
	"• ⚡ Stay away from sparking outlets or wires\n" +
	"• 🔥 Evacuate if you smell burning or see smoke\n" +
	"• 🚫 Don't touch electrical panels if wet\n\n" +
	"**⏰ EMERGENCY RESPONSE:**\n\n" +
	"• Available 24/7 - 365 days a year\n" +
	"• Licensed emergency electricians\n" +
	"• Response time: Within 60 minutes\n" +
	"• Serving all Atlanta metro areas\n"

const estimateIntroText = "I'd be happy to help you get a free estimate!\n\n" +
	"**💰 We provide estimates for:**\n" +
	"• Panel upgrades • Outlets • Lighting\n" +
	"• EV chargers • Rewiring • Generators\n\n" +
	"**What type of electrical work do you need?**"

const scheduleText = "Perfect! Let's get you scheduled for service.\n\n" +
	"I'll show you our available appointment times. You can select a time that works best for you, and we'll send you a confirmation with all the details.\n\n" +
	"Our service hours are:\n" +
	"• Monday-Friday: 8 AM - 6 PM\n" +
	"• Saturday: 8 AM - 4 PM\n" +
	"• Emergency service: 24/7\n\n" +
	"Please select your preferred appointment time below:"

const questionText = "I'm here to answer your electrical questions!\n\n" +
	"You can ask me about:\n" +
	"• Our services and pricing\n" +
	"• Electrical safety tips\n" +
	"• Code requirements\n" +
	"• Service areas\n" +
	"• Licensing and insurance\n\n" +
	"What would you like to know?"

const technicianText = "I'll connect you with one of our licensed electricians!\n\n" +
	"**Please call us at (404) 555-1212** to speak directly with a technician.\n\n" +
	"Our technicians are available:\n" +
	"• Monday-Friday: 8 AM - 6 PM\n" +
	"• Saturday: 8 AM - 4 PM\n" +
	"• Emergency service: 24/7\n\n" +
	"They can help with technical questions, troubleshooting, and detailed project planning.\n\n" +
	"**Call now: (404) 555-1212**"

const otherText = "I'm here to help with anything else you need!\n\n" +
	"You can ask me about:\n" +
	"• Payment options and financing\n" +
	"• Warranties and guarantees\n" +
	"• Service areas and travel fees\n" +
	"• Company history and credentials\n" +
	"• Permits and inspections\n\n" +
	"What can I help you with today?"

const scheduleCallText = "Perfect! Let's schedule your free estimate call.\n\n" +
	"**📞 What to expect:**\n" +
	"• 15-30 minute consultation\n" +
	"• Project assessment & accurate quote\n\n" +
	"Please select your preferred time:"

const scheduleDeclinedText = "No problem! Other ways to get help:\n\n" +
	"**📞 Call:** (404) 555-1212 (Mon-Fri 8AM-6PM)\n" +
	"**📧 Email:** estimates@peachstateelectric.com\n" +
	"**💬 Continue chatting:** Ask me more questions!\n\n" +
	"**What else can I help you with?**"

const estimateNoMatchText = "I don't have specific pricing for that work.\n\n" +
	"Our electricians can provide estimates for custom projects, specialized installations, and code upgrades.\n\n" +
	"**Schedule a call for a personalized quote?**"

// faqNoMatchSentinel stands in for retrieved context when the FAQ corpus has
// no usable match. Rendered into the prompt, never surfaced as an error.
const faqNoMatchSentinel = "No good match found."

// cannedBranch maps a control token to its fixed response.
type cannedBranch struct {
	action    ActionType
	text      string
	nextState State
	nextStep  string
	emergency bool
}

var cannedBranches = map[string]cannedBranch{
	TokenEmergencyButton: {action: ActionEmergency, text: emergencyText, emergency: true},
	TokenEstimateButton: {
		action:    ActionEstimate,
		text:      estimateIntroText,
		nextState: State{Phase: PhaseCollectingEstimate, RemainingFollowups: 1},
	},
	TokenScheduleButton:   {action: ActionSchedule, text: scheduleText, nextStep: NextStepCalendly},
	TokenQuestionButton:   {action: ActionQuestion, text: questionText},
	TokenTechnicianButton: {action: ActionTechnician, text: technicianText},
	TokenOtherButton:      {action: ActionOther, text: otherText},
}
