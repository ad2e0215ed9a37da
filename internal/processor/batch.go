package processor

import (
	"context"
	"log/slog"
	"sync"
)

// Document is one unit of batch input: a file name and its raw text. A
// loader that failed to produce text sets ReadErr instead of dropping the
// file, so the batch still emits an outcome for it.
type Document struct {
	FileName string
	Text     string
	ReadErr  error
}

// Batch fans documents out over a fixed worker pool. Results come back in
// input order regardless of which worker finished first, and the slice is
// always complete: one outcome per input document.
type Batch struct {
	proc    *Processor
	workers int
	logger  *slog.Logger
}

func NewBatch(proc *Processor, workers int, logger *slog.Logger) *Batch {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{proc: proc, workers: workers, logger: logger}
}

// Run processes all documents and returns their outcomes in input order.
func (b *Batch) Run(ctx context.Context, docs []Document) []Outcome {
	out := make([]Outcome, len(docs))
	if len(docs) == 0 {
		return out
	}

	workers := b.workers
	if workers > len(docs) {
		workers = len(docs)
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			b.logger.Debug("batch.worker_started", "worker_id", workerID)
			for i := range idx {
				if docs[i].ReadErr != nil {
					out[i] = b.proc.ErrorOutcome(docs[i].FileName, docs[i].ReadErr)
					continue
				}
				out[i] = b.proc.ProcessDocument(ctx, docs[i].FileName, docs[i].Text)
			}
			b.logger.Debug("batch.worker_stopped", "worker_id", workerID)
		}(w)
	}

	for i := range docs {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return out
}
