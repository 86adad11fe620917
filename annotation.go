package crudgen

// NaturalID 标记标识符由调用方赋值，表单中保留该字段
func NaturalID() Annotation {
	return Annotation{NaturalID: Bool(true)}
}

// GeneratedID 标记标识符由系统生成，不出现在表单中
func GeneratedID() Annotation {
	return Annotation{NaturalID: Bool(false)}
}

// WithLabel 设置视图中显示的实体名称
func WithLabel(label string) Annotation {
	return Annotation{Label: label}
}

// MergeAnnotations 合并多个 Annotation 选项
// 后面的选项会覆盖前面的选项
func MergeAnnotations(opts ...Annotation) Annotation {
	merged := Annotation{}
	for _, opt := range opts {
		merged = merged.Merge(opt).(Annotation)
	}
	return merged
}

func Bool(v bool) *bool { return &v }
