package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 0 {
		t.Errorf("expected 0 frame count, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != 0 {
		t.Errorf("expected 0 min frame time (sentinel handled), got %d", snapshot.MinFrameTimeNs)
	}
	if snapshot.AvgFPS() != 0 {
		t.Errorf("expected 0 FPS without frames, got %v", snapshot.AvgFPS())
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(5 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 3 {
		t.Errorf("expected 3 frames, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != int64(5*time.Millisecond) {
		t.Errorf("expected min 5ms, got %d ns", snapshot.MinFrameTimeNs)
	}
	if snapshot.MaxFrameTimeNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxFrameTimeNs)
	}
	if snapshot.LastFrameNs != int64(5*time.Millisecond) {
		t.Errorf("expected last 5ms, got %d ns", snapshot.LastFrameNs)
	}
	if fps := snapshot.AvgFPS(); fps < 85 || fps > 86 {
		t.Errorf("expected ~85.7 FPS, got %v", fps)
	}
}

func TestMetrics_RecordEvent(t *testing.T) {
	m := NewMetrics()

	m.RecordEvent(2 * time.Millisecond)
	m.RecordEvent(4 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.EventCount != 2 {
		t.Errorf("expected 2 events, got %d", snapshot.EventCount)
	}
	if snapshot.AvgEventNs != int64(3*time.Millisecond) {
		t.Errorf("expected avg 3ms, got %d ns", snapshot.AvgEventNs)
	}
}

func TestMetrics_DragCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordDragStarted()
	m.RecordDragStarted()
	m.RecordDragStarted()
	m.RecordDragEnded()
	m.RecordDragCancelled()
	m.RecordTraversal()
	m.RecordReorder()
	m.RecordConfigReload()

	s := m.Snapshot()
	if s.DragsStarted != 3 || s.DragsEnded != 1 || s.DragsCancelled != 1 {
		t.Errorf("drag counters = %d/%d/%d, want 3/1/1", s.DragsStarted, s.DragsEnded, s.DragsCancelled)
	}
	if s.Traversals != 1 || s.Reorders != 1 || s.ConfigReloads != 1 {
		t.Errorf("other counters = %d/%d/%d, want 1/1/1", s.Traversals, s.Reorders, s.ConfigReloads)
	}
	if rate := s.CancelRate(); rate != 50 {
		t.Errorf("expected 50%% cancel rate, got %v", rate)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordFrame(time.Duration(j+1) * time.Microsecond)
				m.RecordReorder()
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.FrameCount != 1000 || s.Reorders != 1000 {
		t.Errorf("expected 1000 frames and reorders, got %d and %d", s.FrameCount, s.Reorders)
	}
	if s.MinFrameTimeNs != int64(time.Microsecond) || s.MaxFrameTimeNs != int64(100*time.Microsecond) {
		t.Errorf("min/max = %d/%d", s.MinFrameTimeNs, s.MaxFrameTimeNs)
	}
}
