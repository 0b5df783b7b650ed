package geometry

import "fmt"

// Point is a two dimensional integer vector, used both as a pixel
// position and as a translation between regions.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Neg returns the vector -p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Mul returns the vector p*k.
func (p Point) Mul(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) int {
	return p.X*q.X + p.Y*q.Y
}

// Product returns X*Y, the pixel count of a size expressed as a Point.
func (p Point) Product() int {
	return p.X * p.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
