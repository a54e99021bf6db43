package capfloor

// Result pairs an instrument with its valuation outcome. A failed
// instrument carries its error without aborting the rest of the batch.
type Result struct {
	Name string
	NPV  float64
	Err  error
}

// PricePortfolio values each instrument independently. Errors are isolated
// per instrument so one bad trade does not poison the batch. The optional
// onResult callback fires after each valuation, e.g. for progress reporting.
func PricePortfolio(e *Engine, instruments []*Instrument, onResult func(Result)) []Result {
	results := make([]Result, len(instruments))
	for i, inst := range instruments {
		npv, err := e.NPV(inst)
		results[i] = Result{Name: inst.Name, NPV: npv, Err: err}
		if onResult != nil {
			onResult(results[i])
		}
	}
	return results
}
