package memory

import "testing"

func TestThreadMemory_FrameAllocSurvivesResetTask(t *testing.T) {
	var mem ThreadMemory
	p := FrameNew[int](&mem)
	*p = 42
	mem.ResetTask()
	if *p != 42 {
		t.Fatalf("frame allocation clobbered by ResetTask: got %d, want 42", *p)
	}
}

func TestThreadMemory_TaskAllocIsDistinctFromFrame(t *testing.T) {
	var mem ThreadMemory
	framePtr := FrameNew[int64](&mem)
	taskPtr := TaskNew[int64](&mem)
	*framePtr = 1
	*taskPtr = 2
	mem.ResetTask()
	if *framePtr != 1 {
		t.Fatalf("ResetTask affected frame allocation: got %d, want 1", *framePtr)
	}
}

func TestThreadMemory_ResetFrameReclaimsLineBlocks(t *testing.T) {
	var mem ThreadMemory
	type block struct{ next *block }
	b := NewLineBlock[block](&mem)
	if b == nil {
		t.Fatal("NewLineBlock returned nil")
	}
	mem.ResetFrame()
	b2 := NewLineBlock[block](&mem)
	if b2 == nil {
		t.Fatal("NewLineBlock after ResetFrame returned nil")
	}
}

func TestThreadMemory_FrameAllocMultiple(t *testing.T) {
	var mem ThreadMemory
	s := FrameAlloc[int32](&mem, 10)
	if len(s) != 10 {
		t.Fatalf("FrameAlloc length = %d, want 10", len(s))
	}
	for i := range s {
		if s[i] != 0 {
			t.Fatalf("FrameAlloc element %d not zeroed: %d", i, s[i])
		}
	}
}
