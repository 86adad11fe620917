package crudgen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/fourchimps/crudgen/internal/module"
)

type Option func(*Extension)

// WithSourceModule 设置 ent schema 所属的模块 (默认与 Target 相同)
func WithSourceModule(name string) Option {
	return func(e *Extension) {
		e.source = name
	}
}

// WithWorkDir 设置查找 go.mod 的起始目录 (默认为当前目录)
func WithWorkDir(dir string) Option {
	return func(e *Extension) {
		e.workDir = dir
	}
}

// WithSkeletonDir 设置覆盖内置模板的目录
func WithSkeletonDir(dir string) Option {
	return func(e *Extension) {
		e.skeletonDir = dir
	}
}

// WithModule 显式声明模块目录，schema 为空时使用 <dir>/ent/schema
func WithModule(name, dir, schema string) Option {
	return func(e *Extension) {
		if e.modules == nil {
			e.modules = make(map[string]module.Entry)
		}
		e.modules[strings.ToLower(name)] = module.Entry{Dir: dir, Schema: schema}
	}
}

// WithDryRun 只渲染不写入文件
func WithDryRun(enable bool) Option {
	return func(e *Extension) {
		e.dryRun = enable
	}
}

// WithLogger 设置日志记录器
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Extension) {
		if l != nil {
			e.log = l
		}
	}
}
