// SPDX-License-Identifier: MIT

package interval

// Numeric is the capability a number representation must offer so that a
// system of equations can be written once and evaluated both as a plain
// interval function and, through autodiff.Dual, as a value+Jacobian pair.
//
// Operations that may leave the natural domain return an error
// (ErrDomain) instead of a NaN-carrying value.
//
// A typical system:
//
//	func circle[T interval.Numeric[T]](x []T) ([]T, error) {
//		return []T{
//			x[0].Sqr().Add(x[1].Sqr()).AddConst(-1),
//			x[0].Sub(x[1]),
//		}, nil
//	}
type Numeric[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) (T, error)
	Neg() T
	Sqr() T
	Pow(n uint) T
	Sqrt() (T, error)
	Exp() T
	Log() (T, error)
	Sin() T
	Cos() T
	AddConst(c float64) T
	MulConst(c float64) T
	// Const returns the constant c in the receiver's representation.
	Const(c float64) T
}

var _ Numeric[Interval] = Interval{}
