package reminder

var encouragementMessages = []string{
	"Keep strengthening your knowledge! 💪",
	"Consistency is key to mastery! 🔑",
	"You're building lasting memory! 🧠",
	"Great learners revise regularly! ⭐",
	"Spaced repetition = Long-term retention! 📈",
	"Champions never skip revision day! 🏆",
	"Your future self will thank you! 🌟",
	"Every review makes you stronger! 💎",
}

var habitMessages = []string{
	"🔥 Keep your streak alive! Consistency is the secret to success.",
	"💎 Diamond habits are built one day at a time. You've got this!",
	"🚀 Time to level up! Your daily habit awaits.",
	"⭐ Stars shine every day! Time for your daily routine.",
	"🎯 Winners show up every day. Ready to win?",
	"💪 Small daily actions = Massive results!",
	"🌟 One small step today, one giant leap tomorrow!",
}

var taskMessages = []string{
	"📋 A new challenge awaits! Tackle it and feel the satisfaction.",
	"🎯 Focus mode activated! Time to crush your task.",
	"💪 You're stronger than you think. This task doesn't stand a chance!",
	"⚡ Energy up! Let's complete this task and move forward.",
	"🌟 Every task completed is a step toward your goals!",
	"🚀 Launch yourself into action! Task time.",
}

var revisionMethods = map[int]string{
	1: "Quick skim through key concepts",
	2: "Active recall - try to explain without notes",
	3: "Practice problems and examples",
	4: "Teach the concept to someone (or rubber duck)",
	5: "Speed review - you should know this well now!",
}

const defaultRevisionMethod = "Review the topic thoroughly"

// RevisionMethod returns the suggested study technique for a revision number
func RevisionMethod(n int) string {
	if m, ok := revisionMethods[n]; ok {
		return m
	}
	return defaultRevisionMethod
}
