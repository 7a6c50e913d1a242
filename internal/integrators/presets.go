package integrators

// Each constructor returns a fresh tableau, so callers may keep or modify
// the result.

func Feuler() *Tableau {
	return &Tableau{
		Name:  "feuler",
		Order: 1,
		A:     [][]float64{{0}},
		B:     []float64{1},
		C:     []float64{0},
	}
}

// Beuler is backward Euler.
func Beuler() *Tableau {
	return &Tableau{
		Name:  "beuler",
		Order: 1,
		A:     [][]float64{{1}},
		B:     []float64{1},
		C:     []float64{1},
	}
}

// ImpMid is the implicit midpoint rule.
func ImpMid() *Tableau {
	return &Tableau{
		Name:  "impmid",
		Order: 2,
		A:     [][]float64{{1.0 / 2.0}},
		B:     []float64{1},
		C:     []float64{1.0 / 2.0},
	}
}

func CrankNic() *Tableau {
	return &Tableau{
		Name:  "cranknic",
		Order: 2,
		A: [][]float64{
			{0, 0},
			{1.0 / 2.0, 1.0 / 2.0},
		},
		B: []float64{1.0 / 2.0, 1.0 / 2.0},
		C: []float64{0, 1},
	}
}

func ExpMid() *Tableau {
	return &Tableau{
		Name:  "expmid",
		Order: 2,
		A: [][]float64{
			{0, 0},
			{1.0 / 2.0, 0},
		},
		B: []float64{0, 1},
		C: []float64{0, 1.0 / 2.0},
	}
}

func Heun() *Tableau {
	return &Tableau{
		Name:  "heun",
		Order: 2,
		A: [][]float64{
			{0, 0},
			{1, 0},
		},
		B: []float64{1.0 / 2.0, 1.0 / 2.0},
		C: []float64{0, 1},
	}
}

func Ralston() *Tableau {
	return &Tableau{
		Name:  "ralston",
		Order: 2,
		A: [][]float64{
			{0, 0},
			{2.0 / 3.0, 0},
		},
		B: []float64{1.0 / 4.0, 3.0 / 4.0},
		C: []float64{0, 2.0 / 3.0},
	}
}

func Kutta3() *Tableau {
	return &Tableau{
		Name:  "kutta3",
		Order: 3,
		A: [][]float64{
			{0, 0, 0},
			{1.0 / 2.0, 0, 0},
			{-1, 2, 0},
		},
		B: []float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
		C: []float64{0, 1.0 / 2.0, 1},
	}
}

func Heun3() *Tableau {
	return &Tableau{
		Name:  "heun3",
		Order: 3,
		A: [][]float64{
			{0, 0, 0},
			{1.0 / 3.0, 0, 0},
			{0, 2.0 / 3.0, 0},
		},
		B: []float64{1.0 / 4.0, 0, 3.0 / 4.0},
		C: []float64{0, 1.0 / 3.0, 2.0 / 3.0},
	}
}

func Wray3() *Tableau {
	return &Tableau{
		Name:  "wray3",
		Order: 3,
		A: [][]float64{
			{0, 0, 0},
			{8.0 / 15.0, 0, 0},
			{1.0 / 4.0, 5.0 / 12.0, 0},
		},
		B: []float64{1.0 / 4.0, 0, 3.0 / 4.0},
		C: []float64{0, 8.0 / 15.0, 2.0 / 3.0},
	}
}

func Ralston3() *Tableau {
	return &Tableau{
		Name:  "ralston3",
		Order: 3,
		A: [][]float64{
			{0, 0, 0},
			{1.0 / 2.0, 0, 0},
			{0, 3.0 / 4.0, 0},
		},
		B: []float64{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0},
		C: []float64{0, 1.0 / 2.0, 3.0 / 4.0},
	}
}

// SSPRK3 is the strong stability preserving third order scheme of
// Shu and Osher.
func SSPRK3() *Tableau {
	return &Tableau{
		Name:  "ssprk3",
		Order: 3,
		A: [][]float64{
			{0, 0, 0},
			{1, 0, 0},
			{1.0 / 4.0, 1.0 / 4.0, 0},
		},
		B: []float64{1.0 / 6.0, 1.0 / 6.0, 2.0 / 3.0},
		C: []float64{0, 1, 1.0 / 2.0},
	}
}

// RK4 is the classic fourth order method.
func RK4() *Tableau {
	return &Tableau{
		Name:  "rk4",
		Order: 4,
		A: [][]float64{
			{0, 0, 0, 0},
			{1.0 / 2.0, 0, 0, 0},
			{0, 1.0 / 2.0, 0, 0},
			{0, 0, 1, 0},
		},
		B: []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
		C: []float64{0, 1.0 / 2.0, 1.0 / 2.0, 1},
	}
}

// RK38 is Kutta's 3/8 rule.
func RK38() *Tableau {
	return &Tableau{
		Name:  "rk38",
		Order: 4,
		A: [][]float64{
			{0, 0, 0, 0},
			{1.0 / 3.0, 0, 0, 0},
			{-1.0 / 3.0, 1, 0, 0},
			{1, -1, 1, 0},
		},
		B: []float64{1.0 / 8.0, 3.0 / 8.0, 3.0 / 8.0, 1.0 / 8.0},
		C: []float64{0, 1.0 / 3.0, 2.0 / 3.0, 1},
	}
}

// Ralston4 is Ralston's minimum truncation error fourth order method, with
// coefficients rounded to eight decimals.
func Ralston4() *Tableau {
	return &Tableau{
		Name:  "ralston4",
		Order: 4,
		A: [][]float64{
			{0, 0, 0, 0},
			{0.4, 0, 0, 0},
			{0.29697761, 0.15875964, 0, 0},
			{0.21810040, -3.05096516, 3.83286476, 0},
		},
		B: []float64{0.17476028, -0.55148066, 1.20553560, 0.17118478},
		C: []float64{0, 0.4, 0.45573725, 1},
	}
}

// HeunEuler is the Heun 2(1) embedded pair.
func HeunEuler() *Tableau {
	return &Tableau{
		Name:  "heuneuler",
		Order: 2,
		A: [][]float64{
			{0, 0},
			{1, 0},
		},
		B:    []float64{1.0 / 2.0, 1.0 / 2.0},
		C:    []float64{0, 1},
		BHat: []float64{1, 0},
	}
}

// BogackiShampine is the 3(2) pair with the first-same-as-last property.
func BogackiShampine() *Tableau {
	return &Tableau{
		Name:  "bs32",
		Order: 3,
		A: [][]float64{
			{0, 0, 0, 0},
			{1.0 / 2.0, 0, 0, 0},
			{0, 3.0 / 4.0, 0, 0},
			{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0, 0},
		},
		B:    []float64{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0, 0},
		C:    []float64{0, 1.0 / 2.0, 3.0 / 4.0, 1},
		BHat: []float64{7.0 / 24.0, 1.0 / 4.0, 1.0 / 3.0, 1.0 / 8.0},
	}
}

// DormandPrince is the 5(4) pair used by RK45.
func DormandPrince() *Tableau {
	return &Tableau{
		Name:  "dopri5",
		Order: 5,
		A: [][]float64{
			{0, 0, 0, 0, 0, 0, 0},
			{1.0 / 5.0, 0, 0, 0, 0, 0, 0},
			{3.0 / 40.0, 9.0 / 40.0, 0, 0, 0, 0, 0},
			{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0, 0, 0, 0, 0},
			{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0, 0, 0, 0},
			{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0, 0, 0},
			{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
		},
		B: []float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
		C: []float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
		BHat: []float64{
			5179.0 / 57600.0, 0, 7571.0 / 16695.0, 393.0 / 640.0,
			-92097.0 / 339200.0, 187.0 / 2100.0, 1.0 / 40.0,
		},
	}
}
