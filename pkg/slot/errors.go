package slot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCollaboratorUnavailable 渲染/音频/计时器宿主缺失或未就绪
	// 只在启动时报告一次，不按事件重复报告
	ErrCollaboratorUnavailable = errors.New("slot: collaborator unavailable")

	// ErrInvalidTransition 当前状态下该事件没有定义迁移
	// 调用方应视为空操作并记录日志，不能中断会话
	ErrInvalidTransition = errors.New("slot: invalid transition")
)

// TransitionError 描述一次被拒绝的迁移
type TransitionError struct {
	From   State
	Event  EventKind
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("slot: no transition for %s in %s: %s", e.Event, e.From, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// UnavailableError 列出启动时缺失的协作方
type UnavailableError struct {
	Names []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("slot: collaborator unavailable: %s", strings.Join(e.Names, ", "))
}

func (e *UnavailableError) Unwrap() error { return ErrCollaboratorUnavailable }
