package physics

import "testing"

func TestDefaultParametersAreValid(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("expected default parameters to validate, got %v", err)
	}
}

func TestValidateRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *SimulationParameters)
	}{
		{"negative h", func(p *SimulationParameters) { p.H = -1 }},
		{"zero h", func(p *SimulationParameters) { p.H = 0 }},
		{"negative mu", func(p *SimulationParameters) { p.Mu = -0.1 }},
		{"inverted dt bounds", func(p *SimulationParameters) { p.MinDt, p.MaxDt = 1, 0.5 }},
		{"zero mass", func(p *SimulationParameters) { p.Mass = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestCloneIsIndependentCopy(t *testing.T) {
	p := DefaultParameters()
	clone := p.Clone()
	clone.H = 999
	if p.H == clone.H {
		t.Errorf("expected Clone to be independent of the original")
	}
}

func TestModeString(t *testing.T) {
	if ModeSPH.String() != "SPH" {
		t.Errorf("expected SPH, got %s", ModeSPH.String())
	}
	if ModeDiscrete.String() != "Discrete" {
		t.Errorf("expected Discrete, got %s", ModeDiscrete.String())
	}
}
