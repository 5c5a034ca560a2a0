package game

import "math"

// Vec3 represents a point or direction in world space
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the component-wise sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns the vector multiplied by a scalar
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Sub returns the component-wise difference of two vectors
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector in the same direction, or the zero
// vector when the length is zero
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Box is an axis-aligned bounding box in world space
type Box struct {
	Min Vec3
	Max Vec3
}

// Intersects reports whether two boxes overlap on all three axes
func (b Box) Intersects(o Box) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// boxAround builds an AABB centered on pos with the given full extents
func boxAround(pos Vec3, byX, byY, byZ float64) Box {
	return Box{
		Min: Vec3{pos.X - byX/2, pos.Y - byY/2, pos.Z - byZ/2},
		Max: Vec3{pos.X + byX/2, pos.Y + byY/2, pos.Z + byZ/2},
	}
}

// mat4 is a row-major 4x4 transform matrix
type mat4 [16]float64

func matIdentity() mat4 {
	return mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func matTranslate(x, y, z float64) mat4 {
	m := matIdentity()
	m[3] = x
	m[7] = y
	m[11] = z
	return m
}

func matRotateX(rad float64) mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

func matRotateY(rad float64) mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func matRotateZ(rad float64) mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// mul returns a*b (apply b first, then a)
func (a mat4) mul(b mat4) mat4 {
	var out mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// apply transforms a point by the matrix
func (a mat4) apply(v Vec3) Vec3 {
	return Vec3{
		X: a[0]*v.X + a[1]*v.Y + a[2]*v.Z + a[3],
		Y: a[4]*v.X + a[5]*v.Y + a[6]*v.Z + a[7],
		Z: a[8]*v.X + a[9]*v.Y + a[10]*v.Z + a[11],
	}
}

const degToRad = math.Pi / 180.0

// rotatedBox transforms a local box of the given full extents by the Euler
// rotation (degrees, applied X then Z then Y) and translation, and returns
// the AABB of the eight transformed corners. A tilted hull therefore keeps
// its wingtips inside the returned box.
func rotatedBox(pos Vec3, byX, byY, byZ, rotX, rotY, rotZ float64) Box {
	local := Box{
		Min: Vec3{-byX / 2, -byY / 2, -byZ / 2},
		Max: Vec3{byX / 2, byY / 2, byZ / 2},
	}

	transform := matTranslate(pos.X, pos.Y, pos.Z)
	rot := matRotateY(rotY * degToRad).
		mul(matRotateZ(rotZ * degToRad)).
		mul(matRotateX(rotX * degToRad))
	transform = transform.mul(rot)

	corners := [8]Vec3{
		{local.Min.X, local.Min.Y, local.Min.Z},
		{local.Min.X, local.Min.Y, local.Max.Z},
		{local.Min.X, local.Max.Y, local.Min.Z},
		{local.Min.X, local.Max.Y, local.Max.Z},
		{local.Max.X, local.Min.Y, local.Min.Z},
		{local.Max.X, local.Min.Y, local.Max.Z},
		{local.Max.X, local.Max.Y, local.Min.Z},
		{local.Max.X, local.Max.Y, local.Max.Z},
	}

	first := transform.apply(corners[0])
	world := Box{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := transform.apply(c)
		world.Min.X = math.Min(world.Min.X, p.X)
		world.Min.Y = math.Min(world.Min.Y, p.Y)
		world.Min.Z = math.Min(world.Min.Z, p.Z)
		world.Max.X = math.Max(world.Max.X, p.X)
		world.Max.Y = math.Max(world.Max.Y, p.Y)
		world.Max.Z = math.Max(world.Max.Z, p.Z)
	}
	return world
}

// clamp restricts v to [min, max]
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
