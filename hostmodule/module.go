package hostmodule

import "github.com/enovales/winres"

var _ winres.Module = (*Module)(nil)
