package domask

// DefaultMaxOrder bounds the masking order accepted by Allocate and Mask
// unless Configure installs a different limit.
const DefaultMaxOrder = 16

// Config expresses the knobs of the masking engine. Zero values select the
// defaults, so callers can configure only what they care about.
type Config struct {
	// MaxOrder is the highest masking order Allocate and Mask accept, at
	// most 255. Leaving it zero keeps DefaultMaxOrder.
	MaxOrder int

	// Entropy supplies the random words consumed by masking, refreshing and
	// the secure gadgets. Leaving it nil keeps the system CSPRNG.
	Entropy EntropySource
}

var (
	cfgMaxOrder              = DefaultMaxOrder
	cfgEntropy EntropySource = systemSource{}
)

// Configure installs the given configuration. It is not safe to call
// concurrently with in-flight masked operations; configure once at startup.
func Configure(cfg Config) error {
	// Signature packs the order into 8 bits; orders past 255 would alias
	// distinct orders onto one tag and defeat the operand compatibility check.
	if cfg.MaxOrder < 0 || cfg.MaxOrder > 255 {
		return errorf("Configure", "%w: max order %d not in [0, 255]", ErrInvalidOrder, cfg.MaxOrder)
	}
	if cfg.MaxOrder == 0 {
		cfgMaxOrder = DefaultMaxOrder
	} else {
		cfgMaxOrder = cfg.MaxOrder
	}
	if cfg.Entropy == nil {
		cfgEntropy = systemSource{}
	} else {
		cfgEntropy = cfg.Entropy
	}
	return nil
}

// MaxOrder reports the currently configured order limit.
func MaxOrder() int {
	return cfgMaxOrder
}

func checkOrder(op string, order int) error {
	if order < 1 || order > cfgMaxOrder {
		return errorf(op, "%w: order %d not in [1, %d]", ErrInvalidOrder, order, cfgMaxOrder)
	}
	return nil
}
