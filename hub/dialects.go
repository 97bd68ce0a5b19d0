package hub

// Every supported dialect registers itself with the format registry.
import (
	_ "github.com/lehigh-university-libraries/soso/format/eml"
	_ "github.com/lehigh-university-libraries/soso/format/iso19115"
	_ "github.com/lehigh-university-libraries/soso/format/spase"
)
