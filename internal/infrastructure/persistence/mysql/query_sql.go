package mysql

import (
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/pkg/query"
)

// 查询管线 → SQL翻译
// 设计说明:
// 1. 逻辑字段名 → 列名的映射由各仓储提供(白名单,杜绝注入)
// 2. 过滤条件之间AND;检索字段之间OR,整组再与过滤条件AND
// 3. 字符串匹配统一LOWER比较,大小写不敏感

// applyConditions 将过滤谓词翻译为WHERE子句
// columns为逻辑字段名到列名的白名单映射,未知字段直接跳过
func applyConditions(db *gorm.DB, conds []query.Condition, columns map[string]string) *gorm.DB {
	for _, c := range conds {
		col, ok := columns[c.Field]
		if !ok {
			continue
		}

		switch c.Op {
		case query.OpEq:
			if c.Str != "" {
				db = db.Where(col+" = ?", c.Str)
			} else {
				db = db.Where(col+" = ?", c.Int)
			}
		case query.OpContains:
			db = db.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(c.Str)+"%")
		case query.OpPrefix:
			db = db.Where("LOWER("+col+") LIKE ?", strings.ToLower(c.Str)+"%")
		case query.OpGt:
			db = db.Where(col+" > ?", c.Int)
		case query.OpLt:
			db = db.Where(col+" < ?", c.Int)
		case query.OpGte:
			db = db.Where(col+" >= ?", c.Int)
		case query.OpLte:
			db = db.Where(col+" <= ?", c.Int)
		case query.OpRange:
			db = db.Where(col+" BETWEEN ? AND ?", c.Int, c.Int2)
		}
	}
	return db
}

// applySearch 将自由文本检索翻译为OR组合的WHERE子句
// 各检索字段按其静态匹配模式生成谓词,整组括号包裹后与其他条件AND
func applySearch(db *gorm.DB, q query.Query, columns map[string]string) *gorm.DB {
	if q.Search == "" || len(q.SearchFields) == 0 {
		return db
	}

	var parts []string
	var args []interface{}
	lowered := strings.ToLower(q.Search)

	for _, f := range q.SearchFields {
		col, ok := columns[f.Field]
		if !ok {
			continue
		}
		switch f.Mode {
		case query.ModeExact:
			parts = append(parts, "LOWER("+col+") = ?")
			args = append(args, lowered)
		case query.ModePrefix:
			parts = append(parts, "LOWER("+col+") LIKE ?")
			args = append(args, lowered+"%")
		default: // ModeContains
			parts = append(parts, "LOWER("+col+") LIKE ?")
			args = append(args, "%"+lowered+"%")
		}
	}

	if len(parts) == 0 {
		return db
	}
	return db.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// applyOrdering 将排序项翻译为ORDER BY子句
// 排序字段已由Schema白名单校验,此处再经列名映射兜底
func applyOrdering(db *gorm.DB, terms []query.OrderTerm, columns map[string]string) *gorm.DB {
	for _, t := range terms {
		col, ok := columns[t.Field]
		if !ok {
			continue
		}
		dir := " ASC"
		if t.Desc {
			dir = " DESC"
		}
		db = db.Order(col + dir)
	}
	return db
}
