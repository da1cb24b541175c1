package arise

// AchievementsSystem evaluates the achievement catalogs as pure predicates
// over a snapshot of state. Evaluation order is catalog definition order so
// reward-queue ordering stays stable for claim-all.
type AchievementsSystem interface {
	System

	// EvaluateGlobal scans the global catalog against aggregate state,
	// records newly satisfied ids and queues one reward entry each.
	EvaluateGlobal(state *State) []Event

	// EvaluateQuest scans the per-quest catalog at the moment the quest
	// completes, against the quest's own attributes and transient metadata.
	EvaluateQuest(state *State, q *Quest, meta QuestCompletionMeta) []Event
}
