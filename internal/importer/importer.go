// Package importer loads serialized block headers into the chain index.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

const (
	// DefaultBatchSize is the number of headers stored per index transaction.
	DefaultBatchSize = 2000

	// HeaderSize is the serialized size of a wire block header.
	HeaderSize = wire.MaxBlockHeaderPayload
)

// ErrTruncatedHeader is returned when the input ends inside a header.
var ErrTruncatedHeader = errors.New("truncated block header")

// HeaderSaver stores headers and connects the ones whose parent is connected.
type HeaderSaver interface {
	SaveHeaders(headers ...*chain.Header) error
}

// Importer reads concatenated 80 byte wire headers and saves them in batches.
type Importer struct {
	saver     HeaderSaver
	batchSize int
	log       *logger.Logger
}

// New creates an importer. A non-positive batch size selects DefaultBatchSize.
func New(saver HeaderSaver, batchSize int, log *logger.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &Importer{
		saver:     saver,
		batchSize: batchSize,
		log:       log.WithComponent(common.ComponentImporter),
	}
}

// Import reads headers from r until EOF and returns how many were saved.
// Headers carry no block body, so their size is the header size and their transaction count is zero.
// source labels the import metrics.
func (im *Importer) Import(ctx context.Context, r io.Reader, source string) (int, error) {
	start := time.Now()
	imported := 0
	batch := make([]*chain.Header, 0, im.batchSize)

	for {
		header, err := readHeader(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.ErrorsInc(common.ComponentImporter, "error")
			return imported, fmt.Errorf("failed to read header %d: %w", imported+len(batch), err)
		}

		batch = append(batch, chain.HeaderFromWire(header, HeaderSize, 0))
		if len(batch) < im.batchSize {
			continue
		}

		if err := im.flush(ctx, batch, source); err != nil {
			return imported, err
		}
		imported += len(batch)
		batch = batch[:0]
	}

	if len(batch) > 0 {
		if err := im.flush(ctx, batch, source); err != nil {
			return imported, err
		}
		imported += len(batch)
	}

	elapsed := time.Since(start)
	if elapsed > 0 {
		metrics.ImportRateLog(source, float64(imported)/elapsed.Seconds())
	}

	im.log.Infof("import finished: source=%s headers=%d duration=%v", source, imported, elapsed)

	return imported, nil
}

func (im *Importer) flush(ctx context.Context, batch []*chain.Header, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	if err := im.saver.SaveHeaders(batch...); err != nil {
		metrics.ErrorsInc(common.ComponentImporter, "error")
		return fmt.Errorf("failed to save headers: %w", err)
	}

	metrics.ImportBatchTimeLog(source, time.Since(start))
	metrics.HeadersImportedInc(source, len(batch))

	im.log.Debugf("saved header batch: source=%s size=%d last=%s", source, len(batch), batch[len(batch)-1].Hash)

	return nil
}

// readHeader returns io.EOF only when r ends exactly on a header boundary.
func readHeader(r io.Reader) (*wire.BlockHeader, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedHeader
		}
		return nil, err
	}

	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}

	return &header, nil
}
