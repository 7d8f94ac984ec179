package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbake/internal/artifact"
	"github.com/Faultbox/meshbake/internal/baker"
	"github.com/Faultbox/meshbake/internal/config"
	"github.com/Faultbox/meshbake/internal/logger"
	"github.com/Faultbox/meshbake/pkg/mesh"
	"github.com/Faultbox/meshbake/pkg/objfile"
	"github.com/Faultbox/meshbake/pkg/sampling"
)

// defaultInspectRows is how many samples inspect prints without an explicit count.
const defaultInspectRows = 8

// artifactName derives the artifact name from the mesh file name.
func artifactName(meshPath string) string {
	base := filepath.Base(meshPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func cmdBake(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshbake bake <mesh.obj> [name]")
	}
	meshPath := args[0]
	name := artifactName(meshPath)
	if len(args) > 1 {
		name = args[1]
	}

	opts, err := cfg.Bake.Options()
	if err != nil {
		return err
	}

	snap, err := objfile.Load(meshPath)
	if err != nil {
		return err
	}

	b := baker.New(opts, baker.MemoryUploader{}, logger.Named("baker"))
	defer b.Close()

	if err := b.Validate(snap); err != nil {
		return err
	}
	data := b.Mesh()
	buf, ok := b.Buffer().(*baker.MemoryBuffer)
	if !ok {
		return fmt.Errorf("unexpected buffer type %T", b.Buffer())
	}
	encoded, err := buf.Bytes()
	if err != nil {
		return err
	}

	m, err := artifact.Write(cfg.Output.Dir, name, artifact.Manifest{
		Source:    meshPath,
		Seed:      opts.Seed,
		Ordering:  opts.Ordering.Name,
		Triangles: data.TriangleCount(),
		TotalArea: data.TotalArea(),
	}, encoded)
	if err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := b.Stop(); err != nil {
		return err
	}

	manifestPath, samplesPath := artifact.Paths(cfg.Output.Dir, name)
	logger.Info("artifact written",
		zap.String("id", m.ID),
		zap.String("manifest", manifestPath),
		zap.Int("samples", m.SampleCount),
	)
	fmt.Fprintf(out, "Baked %d samples (%d bytes) from %s\n", m.SampleCount, m.ByteSize, meshPath)
	fmt.Fprintf(out, "  id:       %s\n", m.ID)
	fmt.Fprintf(out, "  manifest: %s\n", manifestPath)
	fmt.Fprintf(out, "  samples:  %s\n", samplesPath)
	return nil
}

func cmdInfo(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshbake info <mesh.obj>")
	}

	snap, err := objfile.Load(args[0])
	if err != nil {
		return err
	}
	data, err := mesh.Build(snap)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Mesh:      %s\n", args[0])
	fmt.Fprintf(out, "Vertices:  %d\n", len(data.Vertices))
	fmt.Fprintf(out, "Triangles: %d\n", data.TriangleCount())
	fmt.Fprintf(out, "Area:      %g\n", data.TotalArea())
	fmt.Fprintf(out, "Normals:   %t\n", data.HasNormals)
	fmt.Fprintf(out, "Tangents:  %t\n", data.HasTangents)
	fmt.Fprintf(out, "Colors:    %t\n", data.HasColors)
	fmt.Fprintf(out, "UV sets:   %d\n", data.UVChannels)

	zero := 0
	for i := 0; i < data.TriangleCount(); i++ {
		if data.TriangleArea(i) == 0 {
			zero++
		}
	}
	if zero > 0 {
		fmt.Fprintf(out, "Degenerate triangles: %d (never sampled)\n", zero)
	}
	return nil
}

func cmdInspect(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshbake inspect <name> [n]")
	}
	rows := defaultInspectRows
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid sample count %q", args[1])
		}
		rows = n
	}

	m, samples, err := artifact.ReadFor(cfg.Output.Dir, args[0], cfg.Bake.SampleCount)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Artifact: %s\n", args[0])
	fmt.Fprintf(out, "  id:        %s\n", m.ID)
	fmt.Fprintf(out, "  source:    %s\n", m.Source)
	fmt.Fprintf(out, "  seed:      %d\n", m.Seed)
	fmt.Fprintf(out, "  ordering:  %s\n", m.Ordering)
	fmt.Fprintf(out, "  samples:   %d x %d bytes\n", m.SampleCount, m.RecordSize)
	fmt.Fprintf(out, "  triangles: %d\n", m.Triangles)
	fmt.Fprintf(out, "  area:      %g\n", m.TotalArea)

	if rows > len(samples) {
		rows = len(samples)
	}
	if rows == 0 {
		return nil
	}

	// Resolve positions when the source mesh is still around.
	var data *mesh.Data
	if snap, err := objfile.Load(m.Source); err == nil {
		if d, err := mesh.Build(snap); err == nil && d.TriangleCount() == m.Triangles {
			data = d
		}
	}

	fmt.Fprintln(out)
	for i, s := range samples[:rows] {
		fmt.Fprintf(out, "%6d  tri %-6d  u %.6f  v %.6f", i, s.Index, s.Coord.X, s.Coord.Y)
		if data != nil {
			v, err := sampling.Interpolate(data, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  pos (%.4f, %.4f, %.4f)", v.Position.X, v.Position.Y, v.Position.Z)
		}
		fmt.Fprintln(out)
	}
	return nil
}
