package crops

// Risk thresholds. Rainfall below the water-stress line or temperatures
// above the heat-stress line each raise an independent risk factor;
// both can fire for the same request.
const (
	waterStressRainfallMM = 500
	heatStressTempC       = 35
)

// assessRisks derives situational risk factors from weather alone. The
// crop name is accepted for signature stability but does not vary the
// output; risk factors are weather-only in the current design.
func assessRisks(_ string, weather WeatherConditions) []RiskFactor {
	risks := []RiskFactor{}

	if weather.Rainfall < waterStressRainfallMM {
		risks = append(risks, RiskFactor{
			Type:       "Water Stress",
			Severity:   "Medium",
			Mitigation: "Install drip irrigation system",
		})
	}
	if weather.Temperature > heatStressTempC {
		risks = append(risks, RiskFactor{
			Type:       "Heat Stress",
			Severity:   "High",
			Mitigation: "Use shade nets and cooling systems",
		})
	}
	return risks
}
