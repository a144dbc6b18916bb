package main

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lmousom/ulid"
)

func main() {
	fmt.Println("ULID Benchmark")
	fmt.Println("==============")
	fmt.Printf("Go %s on %s/%s, %d cores\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Println()

	runGenerationBenchmark()
	runBatchBenchmark()
	runConcurrentBenchmark()
	runOrderingTest()
	runStringBenchmark()
	runConversionBenchmark()
	runCollisionTest()
	runSortingComparison()
}

func runGenerationBenchmark() {
	fmt.Println("Generation Performance")
	fmt.Println("---------------------")

	const iterations = 500000

	g := ulid.NewGenerator()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"ULID", func() error {
			_, err := g.Generate()
			return err
		}},
		{"UUID v4", func() error {
			_ = uuid.New()
			return nil
		}},
	}

	for _, test := range tests {
		// Warmup
		for i := 0; i < 1000; i++ {
			test.fn()
		}

		start := time.Now()
		for i := 0; i < iterations; i++ {
			if err := test.fn(); err != nil {
				log.Printf("Error in %s: %v", test.name, err)
			}
		}
		elapsed := time.Since(start)

		opsPerSec := float64(iterations) / elapsed.Seconds()
		nsPerOp := elapsed.Nanoseconds() / int64(iterations)

		fmt.Printf("%-12s %8.0f ops/sec  %6d ns/op\n", test.name, opsPerSec, nsPerOp)
	}
	fmt.Println()
}

func runBatchBenchmark() {
	fmt.Println("Batch Generation")
	fmt.Println("----------------")

	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		fmt.Printf("Batch size %d:\n", size)

		g := ulid.NewGenerator()
		start := time.Now()
		_, err := g.GenerateBatch(size)
		if err != nil {
			log.Printf("Batch error: %v", err)
			continue
		}
		elapsed := time.Since(start)

		rate := float64(size) / elapsed.Seconds()
		fmt.Printf("  ULID: %8.0f IDs/sec\n", rate)

		// UUID has no batch generation, so single generation
		start = time.Now()
		for i := 0; i < size; i++ {
			_ = uuid.New()
		}
		elapsed = time.Since(start)
		rate = float64(size) / elapsed.Seconds()
		fmt.Printf("  UUID: %8.0f IDs/sec\n", rate)
		fmt.Println()
	}
}

func runConcurrentBenchmark() {
	fmt.Println("Concurrent Generation")
	fmt.Println("--------------------")

	const workers = 4
	const perWorker = 50000

	g := ulid.NewGenerator()
	start := time.Now()

	done := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		go func() {
			for j := 0; j < perWorker; j++ {
				_, err := g.Generate()
				if err != nil {
					log.Printf("ULID error: %v", err)
				}
			}
			done <- true
		}()
	}

	for i := 0; i < workers; i++ {
		<-done
	}

	ulidTime := time.Since(start)
	ulidRate := float64(workers*perWorker) / ulidTime.Seconds()

	start = time.Now()

	for i := 0; i < workers; i++ {
		go func() {
			for j := 0; j < perWorker; j++ {
				_ = uuid.New()
			}
			done <- true
		}()
	}

	for i := 0; i < workers; i++ {
		<-done
	}

	uuidTime := time.Since(start)
	uuidRate := float64(workers*perWorker) / uuidTime.Seconds()

	fmt.Printf("ULID: %8.0f IDs/sec (%d workers)\n", ulidRate, workers)
	fmt.Printf("UUID: %8.0f IDs/sec (%d workers)\n", uuidRate, workers)
	fmt.Println()
}

func runOrderingTest() {
	fmt.Println("Monotonic Ordering")
	fmt.Println("------------------")

	const count = 5000
	ids := make([]ulid.ULID, count)

	for i := 0; i < count; i++ {
		ids[i] = ulid.NewID()
	}

	ordered := true
	for i := 1; i < len(ids); i++ {
		if ids[i-1].Compare(ids[i]) >= 0 {
			ordered = false
			break
		}
	}

	fmt.Printf("Generated %d IDs\n", count)
	fmt.Printf("Strictly increasing: %v\n", ordered)

	strings := make([]string, len(ids))
	for i, id := range ids {
		strings[i] = id.String()
	}

	rand.Shuffle(len(strings), func(i, j int) {
		strings[i], strings[j] = strings[j], strings[i]
	})

	start := time.Now()
	sort.Strings(strings)
	sortTime := time.Since(start)

	fmt.Printf("String sort time: %v\n", sortTime)
	fmt.Println()
}

func runStringBenchmark() {
	fmt.Println("String Operations")
	fmt.Println("-----------------")

	const iterations = 50000

	id := ulid.NewID()
	str := id.String()

	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = id.String()
	}
	encodeTime := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		_, err := ulid.Parse(str)
		if err != nil {
			log.Printf("Parse error: %v", err)
		}
	}
	parseTime := time.Since(start)

	encodeRate := float64(iterations) / encodeTime.Seconds()
	parseRate := float64(iterations) / parseTime.Seconds()

	fmt.Printf("String encode: %8.0f ops/sec\n", encodeRate)
	fmt.Printf("String parse:  %8.0f ops/sec\n", parseRate)
	fmt.Printf("String length: %d chars\n", len(str))
	fmt.Println()
}

func runConversionBenchmark() {
	fmt.Println("UUID Conversion")
	fmt.Println("---------------")

	const iterations = 50000

	str := ulid.NewID().String()
	uuidStr, err := ulid.ToUUID(str)
	if err != nil {
		log.Fatalf("ToUUID error: %v", err)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		_, err := ulid.ToUUID(str)
		if err != nil {
			log.Printf("ToUUID error: %v", err)
		}
	}
	toTime := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		_, err := ulid.FromUUID(uuidStr)
		if err != nil {
			log.Printf("FromUUID error: %v", err)
		}
	}
	fromTime := time.Since(start)

	fmt.Printf("ULID -> UUID: %8.0f ops/sec\n", float64(iterations)/toTime.Seconds())
	fmt.Printf("UUID -> ULID: %8.0f ops/sec\n", float64(iterations)/fromTime.Seconds())
	fmt.Printf("Example: %s <-> %s\n", str, uuidStr)
	fmt.Println()
}

func runCollisionTest() {
	fmt.Println("Collision Test")
	fmt.Println("--------------")

	const count = 500000
	seen := make(map[ulid.ULID]bool, count)
	collisions := 0

	start := time.Now()
	for i := 0; i < count; i++ {
		id := ulid.NewID()

		if seen[id] {
			collisions++
		} else {
			seen[id] = true
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("Generated: %d IDs in %v\n", count, elapsed)
	fmt.Printf("Collisions: %d\n", collisions)
	fmt.Printf("Unique rate: %.4f%%\n", float64(len(seen))/float64(count)*100)
	fmt.Println()
}

func runSortingComparison() {
	fmt.Println("Sorting Comparison")
	fmt.Println("------------------")

	const count = 50000

	ulids := make([]string, count)
	uuids := make([]string, count)

	for i := 0; i < count; i++ {
		ulids[i] = ulid.NewID().String()
		uuids[i] = uuid.New().String()
	}

	rand.Shuffle(len(ulids), func(i, j int) {
		ulids[i], ulids[j] = ulids[j], ulids[i]
	})
	rand.Shuffle(len(uuids), func(i, j int) {
		uuids[i], uuids[j] = uuids[j], uuids[i]
	})

	start := time.Now()
	sort.Strings(ulids)
	ulidSortTime := time.Since(start)

	start = time.Now()
	sort.Strings(uuids)
	uuidSortTime := time.Since(start)

	fmt.Printf("ULID sort: %v\n", ulidSortTime)
	fmt.Printf("UUID sort: %v\n", uuidSortTime)

	if ulidSortTime < uuidSortTime {
		ratio := float64(uuidSortTime) / float64(ulidSortTime)
		fmt.Printf("ULID %.1fx faster\n", ratio)
	} else {
		ratio := float64(ulidSortTime) / float64(uuidSortTime)
		fmt.Printf("UUID %.1fx faster\n", ratio)
	}

	fmt.Println()
	fmt.Println("Note: Sorting performance can vary based on data patterns")
	fmt.Println("and system characteristics. Results may differ between runs.")
}
