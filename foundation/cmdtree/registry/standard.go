package registry

import (
	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/params"
)

func (r *Registry) registerStandard() {
	Register[int](r, func(p params.Parameters) argument.Parser { return argument.NewIntegerParser[int](p) })
	Register[int8](r, func(p params.Parameters) argument.Parser { return argument.NewIntegerParser[int8](p) })
	Register[int16](r, func(p params.Parameters) argument.Parser { return argument.NewIntegerParser[int16](p) })
	Register[int32](r, func(p params.Parameters) argument.Parser { return argument.NewIntegerParser[int32](p) })
	Register[int64](r, func(p params.Parameters) argument.Parser { return argument.NewIntegerParser[int64](p) })
	Register[uint](r, func(p params.Parameters) argument.Parser { return argument.NewUnsignedParser[uint](p) })
	Register[uint8](r, func(p params.Parameters) argument.Parser { return argument.NewUnsignedParser[uint8](p) })
	Register[uint16](r, func(p params.Parameters) argument.Parser { return argument.NewUnsignedParser[uint16](p) })
	Register[uint32](r, func(p params.Parameters) argument.Parser { return argument.NewUnsignedParser[uint32](p) })
	Register[uint64](r, func(p params.Parameters) argument.Parser { return argument.NewUnsignedParser[uint64](p) })
	Register[float32](r, func(p params.Parameters) argument.Parser { return argument.NewFloatParser[float32](p) })
	Register[float64](r, func(p params.Parameters) argument.Parser { return argument.NewFloatParser[float64](p) })
	Register[bool](r, func(p params.Parameters) argument.Parser { return argument.NewBoolParser(p) })
	Register[argument.Char](r, func(p params.Parameters) argument.Parser { return argument.NewCharParser(p) })
	Register[string](r, func(p params.Parameters) argument.Parser { return argument.NewStringParser(p) })
	Register[[]string](r, func(p params.Parameters) argument.Parser { return argument.NewStringArrayParser(p) })

	r.registerStandardMappers()
}
