package crudgen

import (
	"entgo.io/ent/entc"
	"entgo.io/ent/entc/gen"
	"go.uber.org/zap"

	"github.com/fourchimps/crudgen/internal/module"
	"github.com/fourchimps/crudgen/internal/types"
)

// Extension 实现 entc.Extension 接口，在 ent 代码生成之后生成 CRUD 控制器、视图与表单
type Extension struct {
	target      string
	source      string
	entities    []string
	withWrite   bool
	format      string
	routePrefix string

	workDir     string
	skeletonDir string
	modules     map[string]module.Entry
	dryRun      bool
	log         *zap.SugaredLogger
}

// Config 定义了 Extension 的配置参数
type Config struct {
	Target      string   // 接收生成文件的宿主模块 (e.g. "Admin")
	Entities    []string // 需要生成的实体名称，为空时生成图中全部实体
	WithWrite   bool     // 是否生成 new/edit/delete 动作与表单
	Format      string   // 路由格式: annotation (默认), yml, xml, go
	RoutePrefix string   // 路由前缀，仅在只有一个实体时生效
}

func NewExtension(cfg Config, opts ...Option) *Extension {
	e := &Extension{
		target:      cfg.Target,
		entities:    append([]string(nil), cfg.Entities...),
		withWrite:   cfg.WithWrite,
		format:      cfg.Format,
		routePrefix: cfg.RoutePrefix,
		workDir:     ".",
		log:         zap.NewNop().Sugar(),
	}
	if e.format == "" {
		e.format = string(types.FormatAnnotation)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == "" {
		e.source = e.target
	}
	return e
}

func (e *Extension) Hooks() []gen.Hook {
	return []gen.Hook{
		e.GenerateFiles,
	}
}

func (e *Extension) Annotations() []entc.Annotation {
	return nil
}

func (e *Extension) Options() []entc.Option {
	return nil
}

func (e *Extension) Templates() []*gen.Template {
	return nil
}
