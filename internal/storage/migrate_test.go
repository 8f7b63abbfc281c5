// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-kv and kv-to-sqlite copies with child counts.
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/superlift/internal/logging"
	"github.com/harperreed/superlift/internal/seed"
)

func TestMigrateDataSQLiteToKV(t *testing.T) {
	ctx := context.Background()

	src := NewRepository(setupTestDB(t), seed.NewDemo(logging.Discard()), logging.Discard())
	if err := src.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	kv, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	defer kv.Close()
	dst := newTestRepo(t, kv)

	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	if summary.Workouts != 5 {
		t.Errorf("Workouts = %d, want 5", summary.Workouts)
	}
	if summary.Exercises != 18 {
		t.Errorf("Exercises = %d, want 18", summary.Exercises)
	}
	if summary.Sets != 57 {
		t.Errorf("Sets = %d, want 57", summary.Sets)
	}

	srcAll, _ := src.GetAllWorkouts(ctx)
	dstAll, _ := dst.GetAllWorkouts(ctx)
	if len(dstAll) != len(srcAll) {
		t.Fatalf("destination has %d workouts, want %d", len(dstAll), len(srcAll))
	}
	for i := range srcAll {
		if srcAll[i].ID != dstAll[i].ID || !srcAll[i].Date.Equal(dstAll[i].Date) {
			t.Errorf("workout %d mismatch: %s vs %s", i, srcAll[i].ID, dstAll[i].ID)
		}
		if srcAll[i].SetCount() != dstAll[i].SetCount() {
			t.Errorf("workout %s set count %d, want %d", srcAll[i].ID, dstAll[i].SetCount(), srcAll[i].SetCount())
		}
	}
}

func TestMigrateDataKVToSQLite(t *testing.T) {
	ctx := context.Background()

	kv, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	defer kv.Close()
	src := newTestRepo(t, kv)
	if err := src.InsertWorkout(ctx, sampleWorkout("k1", time.Now())); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}

	dst := newTestRepo(t, setupTestDB(t))
	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 1 || summary.Exercises != 2 || summary.Sets != 3 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	w, err := dst.GetWorkout(ctx, "k1")
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if w.Exercises[0].Sets[1].Weight != 155 {
		t.Errorf("set weight = %v, want 155", w.Exercises[0].Sets[1].Weight)
	}
}
