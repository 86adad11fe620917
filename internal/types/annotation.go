package types

import "entgo.io/ent/schema"

// AnnotationName is the key under which ent stores the annotation on schemas and fields.
const AnnotationName = "CrudGen"

// Annotation 定义 crudgen 的 schema 注解
type Annotation struct {
	NaturalID *bool  `json:"natural_id,omitempty"` // 标识符由调用方赋值 (true) 或由系统生成 (false)；为空时自动推断
	Label     string `json:"label,omitempty"`      // 视图中显示的实体名称
}

// Name 实现 ent.Annotation 接口
func (Annotation) Name() string {
	return AnnotationName
}

// Merge 实现 schema.Merger 接口，后面的值覆盖前面的值
func (a Annotation) Merge(other schema.Annotation) schema.Annotation {
	var o Annotation
	switch v := other.(type) {
	case Annotation:
		o = v
	case *Annotation:
		if v == nil {
			return a
		}
		o = *v
	default:
		return a
	}
	if o.NaturalID != nil {
		a.NaturalID = o.NaturalID
	}
	if o.Label != "" {
		a.Label = o.Label
	}
	return a
}
