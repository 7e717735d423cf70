package poisson_test

import (
	"errors"
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/countfit/errs"
	"github.com/arloliu/countfit/poisson"
)

// ExampleFitCounts fits an intercept plus a binary indicator.
func ExampleFitCounts() {
	x := mat.NewDense(10, 2, []float64{
		1, 0, 1, 0, 1, 0, 1, 0, 1, 0,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	})
	y := []int{2, 3, 4, 3, 3, 6, 5, 7, 6, 6}

	res, err := poisson.FitCounts(y, x, poisson.WithNames("intercept", "treated"))
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range res.Table() {
		fmt.Printf("%-9s %.4f (%.4f)\n", c.Name, c.Estimate, c.StdErr)
	}

	// Output:
	// intercept 1.0986 (0.2582)
	// treated   0.6931 (0.3162)
}

// ExampleResult_Contrast compares predicted counts with the indicator off and on.
func ExampleResult_Contrast() {
	x := mat.NewDense(10, 2, []float64{
		1, 0, 1, 0, 1, 0, 1, 0, 1, 0,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	})
	y := []int{2, 3, 4, 3, 3, 6, 5, 7, 6, 6}

	res, err := poisson.FitCounts(y, x, poisson.WithNames("intercept", "treated"))
	if err != nil {
		log.Fatal(err)
	}

	c, err := res.Contrast(x, 1, 0, 1)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("base=%.2f treated=%.2f diff=%.2f\n", c.MeanBase, c.MeanTreated, c.Difference)

	// Output:
	// base=3.00 treated=6.00 diff=3.00
}

// ExampleFit_convergenceFailure shows how an exhausted iteration budget surfaces.
func ExampleFit_convergenceFailure() {
	x := mat.NewDense(6, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
		1, 4,
		1, 5,
	})
	y := []float64{1, 1, 3, 4, 8, 12}

	_, err := poisson.Fit(y, x, poisson.WithMaxIterations(1))
	fmt.Println(errors.Is(err, errs.ErrNotConverged))

	// Output:
	// true
}
