// Package baker owns a baked sample set and the buffer uploaded from it
// for the lifetime of a host component.
package baker

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbake/pkg/mesh"
	"github.com/Faultbox/meshbake/pkg/sampling"
)

// ErrNoSamples is returned when uploading before anything was baked or loaded.
var ErrNoSamples = errors.New("no baked samples")

// Baker holds the last baked sample set and its uploaded buffer. Both are
// replaced as a whole; readers never observe a partially updated set.
type Baker struct {
	mu       sync.Mutex
	opts     sampling.Options
	uploader Uploader
	log      *zap.Logger

	// orderGen changes whenever SetOptions installs a different ordering.
	orderGen uint64

	data      *mesh.Data
	samples   []sampling.Record
	bakedWith params
	buffer    Buffer
}

// params are the options that determine a baked set's contents.
type params struct {
	seed     int32
	count    int
	orderGen uint64
}

func (b *Baker) paramsLocked() params {
	return params{seed: b.opts.Seed, count: b.opts.Count, orderGen: b.orderGen}
}

// New creates a Baker. A nil logger disables logging.
func New(opts sampling.Options, uploader Uploader, log *zap.Logger) *Baker {
	if log == nil {
		log = zap.NewNop()
	}
	if uploader == nil {
		uploader = MemoryUploader{}
	}
	opts.Logger = log
	return &Baker{opts: opts, uploader: uploader, log: log}
}

// Options returns the current bake options.
func (b *Baker) Options() sampling.Options {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opts
}

// SetOptions changes the bake parameters. Existing samples are kept until
// the next Validate decides whether they are stale. Installing a custom
// ordering always marks the samples stale.
func (b *Baker) SetOptions(opts sampling.Options) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.opts.Ordering.Equal(opts.Ordering) {
		b.orderGen++
	}
	opts.Logger = b.log
	b.opts = opts
}

// Samples returns a copy of the current baked set, or nil.
func (b *Baker) Samples() []sampling.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.samples == nil {
		return nil
	}
	return append([]sampling.Record(nil), b.samples...)
}

// Mesh returns the attribute cache of the last successful bake, or nil
// when the held samples were loaded rather than baked.
func (b *Baker) Mesh() *mesh.Data {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Buffer returns the currently uploaded buffer, or nil.
func (b *Baker) Buffer() Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer
}

// Bake builds the mesh cache and replaces the held samples with a fresh bake.
// On failure the previous samples are kept.
func (b *Baker) Bake(snap *mesh.Snapshot) ([]sampling.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bakeLocked(snap)
}

func (b *Baker) bakeLocked(snap *mesh.Snapshot) ([]sampling.Record, error) {
	data, err := mesh.Build(snap)
	if err != nil {
		b.log.Warn("mesh rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", sampling.ErrConfig, err)
	}

	samples, err := sampling.Bake(data, b.opts)
	if err != nil {
		b.log.Warn("bake failed", zap.Error(err))
		return nil, err
	}

	b.data = data
	b.samples = samples
	b.bakedWith = b.paramsLocked()
	b.log.Info("baked samples",
		zap.Int32("seed", b.opts.Seed),
		zap.Int("count", len(samples)),
		zap.String("ordering", b.opts.Ordering.Name),
		zap.Int("triangles", data.TriangleCount()),
	)
	return append([]sampling.Record(nil), samples...), nil
}

// Load installs a previously baked set, assumed to come from the current
// options. A set whose length differs from the configured count is rejected
// and the held samples are left unchanged.
func (b *Baker) Load(samples []sampling.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := sampling.Validate(samples, b.opts.Count); err != nil {
		return err
	}
	b.data = nil
	b.samples = append([]sampling.Record(nil), samples...)
	b.bakedWith = b.paramsLocked()
	return nil
}

// Validate rebakes when no samples are held or they were produced with
// different options, then re-uploads when the buffer is missing, sized for a
// different count, or the samples changed. Mesh edits are not detected;
// call Bake after changing the mesh.
func (b *Baker) Validate(snap *mesh.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rebaked := false
	if b.samples == nil || len(b.samples) != b.opts.Count || b.bakedWith != b.paramsLocked() {
		b.log.Debug("samples stale, rebaking",
			zap.Int("held", len(b.samples)),
			zap.Int("configured", b.opts.Count),
		)
		if _, err := b.bakeLocked(snap); err != nil {
			return err
		}
		rebaked = true
	}

	if rebaked || b.buffer == nil || b.buffer.Count() != b.opts.Count {
		return b.uploadLocked()
	}
	return nil
}

// Start uploads the held samples into a new buffer, releasing any previous one.
func (b *Baker) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploadLocked()
}

func (b *Baker) uploadLocked() error {
	if b.samples == nil {
		return ErrNoSamples
	}
	if err := sampling.Validate(b.samples, b.opts.Count); err != nil {
		b.log.Error("refusing to upload stale samples", zap.Error(err))
		return err
	}

	if err := b.releaseLocked(); err != nil {
		return err
	}

	buf, err := b.uploader.Upload(sampling.Marshal(b.samples), len(b.samples), sampling.RecordSize)
	if err != nil {
		return fmt.Errorf("uploading samples: %w", err)
	}
	b.buffer = buf
	b.log.Debug("uploaded samples",
		zap.Int("count", len(b.samples)),
		zap.Int("bytes", sampling.ByteSize(len(b.samples))),
	)
	return nil
}

// Stop releases the uploaded buffer. It is safe to call at any time.
func (b *Baker) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.releaseLocked()
}

func (b *Baker) releaseLocked() error {
	if b.buffer == nil {
		return nil
	}
	err := b.buffer.Release()
	b.buffer = nil
	return err
}

// Close releases the buffer and drops the held samples.
func (b *Baker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
	b.samples = nil
	b.bakedWith = params{}
	return b.releaseLocked()
}
