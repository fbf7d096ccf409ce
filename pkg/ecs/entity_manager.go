// Package ecs 提供最小化的实体-组件存储
//
// 组件是纯数据（通常是指针类型），按具体类型分表存放；
// 查询结果按实体ID升序返回，保证系统遍历顺序与创建顺序一致。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	alive  map[EntityID]struct{}
	// 组件表: ComponentType -> EntityID -> Component实例
	stores map[reflect.Type]map[EntityID]any
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
		stores: make(map[reflect.Type]map[EntityID]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.alive[id] = struct{}{}
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsAlive 实体是否存在（已标记但未清理的实体仍视为存在）
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.alive[id]
	return ok
}

// AddComponent 为实体添加组件，同类型组件会被覆盖
// 对不存在的实体无效
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if !em.IsAlive(id) {
		return
	}
	t := reflect.TypeOf(component)
	store, ok := em.stores[t]
	if !ok {
		store = make(map[EntityID]any)
		em.stores[t] = store
	}
	store[id] = component
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if store, ok := em.stores[componentType]; ok {
		delete(store, id)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.stores[componentType][id]
	return comp, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.stores[componentType][id]
	return ok
}

// RemoveMarkedEntities 清理所有标记删除的实体及其组件
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		if !em.IsAlive(id) {
			continue
		}
		delete(em.alive, id)
		for _, store := range em.stores {
			delete(store, id)
		}
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// EntityCount 当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.alive)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体，按ID升序
// 从最小的组件表开始筛选；不传类型时返回全部实体
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	if len(componentTypes) == 0 {
		for id := range em.alive {
			result = append(result, id)
		}
		sortIDs(result)
		return result
	}

	var smallest map[EntityID]any
	for _, ct := range componentTypes {
		store := em.stores[ct]
		if len(store) == 0 {
			return result
		}
		if smallest == nil || len(store) < len(smallest) {
			smallest = store
		}
	}

	for id := range smallest {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := em.stores[ct][id]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sortIDs(result)
	return result
}

func sortIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
