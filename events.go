package geoenrich

const (
	lookupDatabaseCity = "city"
	lookupDatabaseASN  = "asn"

	lookupOutcomeHit   = "hit"
	lookupOutcomeMiss  = "miss"
	lookupOutcomeError = "error"
)
