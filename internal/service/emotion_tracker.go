package service

import "sync"

// emotionRingSize bounds how many recent labels are kept per user.
const emotionRingSize = 50

// EmotionTracker keeps a bounded ring of recently observed emotion labels
// per user. Webcam frames arrive independently of audio captures; when an
// audio task is recorded, the current ring contents are snapshotted into
// the entry. Keying by user prevents cross-user leakage under concurrent
// sessions.
type EmotionTracker struct {
	mu    sync.Mutex
	rings map[string][]string
}

func NewEmotionTracker() *EmotionTracker {
	return &EmotionTracker{rings: make(map[string][]string)}
}

func (t *EmotionTracker) Record(userID, emotion string) {
	if userID == "" || emotion == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	ring := append(t.rings[userID], emotion)
	if len(ring) > emotionRingSize {
		ring = ring[len(ring)-emotionRingSize:]
	}
	t.rings[userID] = ring
}

// Snapshot returns a copy of the user's current labels, oldest first.
func (t *EmotionTracker) Snapshot(userID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ring := t.rings[userID]
	out := make([]string, len(ring))
	copy(out, ring)
	return out
}

// Reset clears a user's ring, typically after a completed assessment run.
func (t *EmotionTracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rings, userID)
}
