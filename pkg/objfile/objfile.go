// Package objfile reads Wavefront OBJ geometry into a mesh snapshot.
//
// Supported statements are v (with optional r g b [a] vertex colors), vt, vn
// and f. Faces with more than three corners are fan-triangulated. Materials,
// groups and smoothing statements are ignored.
package objfile

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/meshbake/pkg/math"
	"github.com/Faultbox/meshbake/pkg/mesh"
)

// Parse errors.
var (
	ErrBadNumber = errors.New("malformed number")
	ErrBadFace   = errors.New("malformed face")
	ErrBadIndex  = errors.New("face index out of range")
)

// corner is one face corner: 0-based position, uv and normal indices (-1 if absent).
type corner struct {
	v, vt, vn int
}

type reader struct {
	positions []math.Vec3
	colors    []math.Vec4
	uvs       []math.Vec4
	normals   []math.Vec3

	corners map[corner]uint32
	order   []corner
	indices []uint32

	colorCount int
}

// Load reads an OBJ file from disk.
func Load(path string) (*mesh.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

// Read parses OBJ text. Each distinct v/vt/vn combination becomes one vertex.
func Read(r io.Reader) (*mesh.Snapshot, error) {
	rd := &reader{corners: make(map[corner]uint32)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if err := rd.statement(fields[0], fields[1:]); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rd.snapshot(), nil
}

func (rd *reader) statement(keyword string, args []string) error {
	switch keyword {
	case "v":
		nums, err := parseFloats(args, 3, 7)
		if err != nil {
			return err
		}
		rd.positions = append(rd.positions, math.Vec3{X: nums[0], Y: nums[1], Z: nums[2]})
		c := math.One
		switch len(nums) {
		case 6, 7:
			c = math.Vec4{X: nums[3], Y: nums[4], Z: nums[5], W: 1}
			if len(nums) == 7 {
				c.W = nums[6]
			}
			rd.colorCount++
		}
		rd.colors = append(rd.colors, c)
	case "vt":
		nums, err := parseFloats(args, 1, 3)
		if err != nil {
			return err
		}
		uv := math.Vec4{X: nums[0]}
		if len(nums) > 1 {
			uv.Y = nums[1]
		}
		if len(nums) > 2 {
			uv.Z = nums[2]
		}
		rd.uvs = append(rd.uvs, uv)
	case "vn":
		nums, err := parseFloats(args, 3, 3)
		if err != nil {
			return err
		}
		rd.normals = append(rd.normals, math.Vec3{X: nums[0], Y: nums[1], Z: nums[2]})
	case "f":
		return rd.face(args)
	}
	return nil
}

func (rd *reader) face(args []string) error {
	if len(args) < 3 {
		return errors.Wrapf(ErrBadFace, "%d corners", len(args))
	}

	ids := make([]uint32, len(args))
	for i, a := range args {
		c, err := rd.parseCorner(a)
		if err != nil {
			return err
		}
		id, ok := rd.corners[c]
		if !ok {
			id = uint32(len(rd.order))
			rd.corners[c] = id
			rd.order = append(rd.order, c)
		}
		ids[i] = id
	}

	for i := 1; i+1 < len(ids); i++ {
		rd.indices = append(rd.indices, ids[0], ids[i], ids[i+1])
	}
	return nil
}

func (rd *reader) parseCorner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 || parts[0] == "" {
		return corner{}, errors.Wrapf(ErrBadFace, "corner %q", s)
	}

	c := corner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolve(parts[0], len(rd.positions)); err != nil {
		return corner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolve(parts[1], len(rd.uvs)); err != nil {
			return corner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolve(parts[2], len(rd.normals)); err != nil {
			return corner{}, err
		}
	}
	return c, nil
}

// resolve converts a 1-based or negative (relative) OBJ index to 0-based.
func resolve(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrBadFace, "index %q", s)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, errors.Wrapf(ErrBadIndex, "%d of %d", n, count)
	}
	return idx, nil
}

func (rd *reader) snapshot() *mesh.Snapshot {
	if len(rd.order) == 0 {
		// No faces: keep the raw points so the mesh reports as triangle-free.
		return &mesh.Snapshot{Positions: append([]math.Vec3(nil), rd.positions...)}
	}

	s := &mesh.Snapshot{
		Positions: make([]math.Vec3, len(rd.order)),
		Indices:   rd.indices,
	}

	allUV, allNormal := true, true
	for _, c := range rd.order {
		allUV = allUV && c.vt >= 0
		allNormal = allNormal && c.vn >= 0
	}
	hasColors := rd.colorCount > 0 && rd.colorCount == len(rd.positions)

	var uv0 []math.Vec4
	if allUV {
		uv0 = make([]math.Vec4, len(rd.order))
		s.UVs = [][]math.Vec4{uv0}
	}
	if allNormal {
		s.Normals = make([]math.Vec3, len(rd.order))
	}
	if hasColors {
		s.Colors = make([]math.Vec4, len(rd.order))
	}

	for i, c := range rd.order {
		s.Positions[i] = rd.positions[c.v]
		if allUV {
			uv0[i] = rd.uvs[c.vt]
		}
		if allNormal {
			s.Normals[i] = rd.normals[c.vn]
		}
		if hasColors {
			s.Colors[i] = rd.colors[c.v]
		}
	}
	return s
}

func parseFloats(args []string, lo, hi int) ([]float32, error) {
	if len(args) < lo || len(args) > hi {
		return nil, errors.Wrapf(ErrBadNumber, "want %d to %d values, got %d", lo, hi, len(args))
	}
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrBadNumber, "%q", a)
		}
		out[i] = float32(f)
	}
	return out, nil
}
