package model

// AggregateView is the merged per-user payload assembled from the three
// modality stores. An absent survey is nil; absent task sequences are empty,
// never nil-vs-present conflated with "no data at all" (the aggregator
// reports that case as not found instead of returning an empty view).
type AggregateView struct {
	History      map[string]any     `json:"history"`
	WritingTasks []WritingTaskEntry `json:"writingTasks"`
	AudioTasks   []AudioTaskEntry   `json:"audioTask"`
}
