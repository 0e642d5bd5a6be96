package processing

// Pacing heuristics derived from the target runtime. These numbers are passed
// into the generation request as explicit constraints; see GenerateScript for
// how a non-conforming response is handled.

const (
	// secondsPerScene keeps one scene per 8-12 seconds of runtime.
	secondsPerScene = 10
	// MinScenes is the floor below which a storyboard stops reading as one.
	MinScenes = 4
	// wordsPerSecond targets ~150 narration words per minute.
	wordsPerSecond = 2.5
)

// ScenesFor returns the scene count requested for a target duration. It is
// monotonically non-decreasing in the duration and never below MinScenes.
func ScenesFor(durationSeconds int) int {
	if durationSeconds <= 0 {
		return MinScenes
	}
	n := durationSeconds / secondsPerScene
	if n < MinScenes {
		return MinScenes
	}
	return n
}

// WordsFor returns the total narration word budget for a target duration.
func WordsFor(durationSeconds int) int {
	if durationSeconds <= 0 {
		return 0
	}
	return int(float64(durationSeconds) * wordsPerSecond)
}

// WordsPerScene splits the word budget evenly across the requested scenes.
func WordsPerScene(durationSeconds int) int {
	scenes := ScenesFor(durationSeconds)
	if scenes == 0 {
		return 0
	}
	return WordsFor(durationSeconds) / scenes
}
