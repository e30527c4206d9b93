package features

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithSample sets the data-taking period and detector setup passed to the
// isolation helper.
func WithSample(sampleType, setup int) Option {
	return func(a *Assembler) {
		if sampleType > 0 {
			a.sampleType = sampleType
		}
		if setup > 0 {
			a.setup = setup
		}
	}
}
