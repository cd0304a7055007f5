package repo

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"staymarket/internal/domain"
)

// MemoryConfig 内存后端的行为配置
type MemoryConfig struct {
	Kind   string   // 实体名，冲突与未命中消息用
	Unique []string // 需要唯一的属性（snake_case），对齐关系后端的唯一索引
}

// Memory 内存后端：id -> 实体指针，另存插入顺序。
// 读多写少的测试/无库模式，RWMutex 足够。
type Memory[T Record] struct {
	mu      sync.RWMutex
	cfg     MemoryConfig
	items   map[string]T
	order   []string
}

func NewMemory[T Record](cfg MemoryConfig) *Memory[T] {
	return &Memory[T]{cfg: cfg, items: make(map[string]T)}
}

func (m *Memory[T]) Add(_ context.Context, e T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := e.EntityID()
	if _, ok := m.items[id]; ok {
		return domain.NewConflictError(fmt.Sprintf("%s %q already exists", m.cfg.Kind, id))
	}
	for _, attr := range m.cfg.Unique {
		want, ok := attributeValue(e, attr)
		if !ok {
			continue
		}
		for _, other := range m.items {
			if got, ok := attributeValue(other, attr); ok && looseEqual(got, want) {
				return domain.NewConflictError(fmt.Sprintf("%s with %s %v already exists", m.cfg.Kind, attr, want))
			}
		}
	}
	m.items[id] = e
	m.order = append(m.order, id)
	return nil
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var zero T
	e, ok := m.items[id]
	if !ok {
		return zero, nil
	}
	return e, nil
}

func (m *Memory[T]) GetAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *Memory[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	e, ok := m.items[id]
	if !ok {
		return zero, nil
	}
	// 字段校验由实体自己做
	if err := e.ApplyUpdate(fields); err != nil {
		return zero, err
	}
	return e, nil
}

// Save 存的是指针，变更已就地生效；这里只校验唯一属性没被改破
func (m *Memory[T]) Save(_ context.Context, e T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := e.EntityID()
	if _, ok := m.items[id]; !ok {
		return domain.NewNotFoundError(m.cfg.Kind, id)
	}
	for _, attr := range m.cfg.Unique {
		want, ok := attributeValue(e, attr)
		if !ok {
			continue
		}
		for otherID, other := range m.items {
			if otherID == id {
				continue
			}
			if got, ok := attributeValue(other, attr); ok && looseEqual(got, want) {
				return domain.NewConflictError(fmt.Sprintf("%s with %s %v already exists", m.cfg.Kind, attr, want))
			}
		}
	}
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *Memory[T]) FindByAttribute(_ context.Context, name string, value any) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var zero T
	for _, id := range m.order {
		e := m.items[id]
		if got, ok := attributeValue(e, name); ok && looseEqual(got, value) {
			return e, nil
		}
	}
	return zero, nil
}

func (m *Memory[T]) FindAllByAttribute(_ context.Context, name string, value any) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []T
	for _, id := range m.order {
		e := m.items[id]
		if got, ok := attributeValue(e, name); ok && looseEqual(got, value) {
			out = append(out, e)
		}
	}
	return out, nil
}

// attributeValue 按 snake_case 属性名取字段值，递归展开匿名嵌入（Base）
func attributeValue(e any, name string) (any, bool) {
	v := reflect.ValueOf(e)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	return structField(v, name)
}

func structField(v reflect.Value, name string) (any, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // 未导出
		}
		if f.Anonymous {
			fv := v.Field(i)
			if fv.Kind() == reflect.Struct {
				if got, ok := structField(fv, name); ok {
					return got, true
				}
			}
			continue
		}
		if toSnake(f.Name) == name {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// looseEqual 数字跨类型（int 与 JSON 的 float64）也算相等
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
