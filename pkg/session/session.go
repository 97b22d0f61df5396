// Package session 保存最近一次查找的窗口、模板与匹配结果
//
// 整条记录由一把读写锁保护，读者不会看到只更新了一半的结果。
package session

import "sync"

// Snapshot 会话状态快照
type Snapshot struct {
	WindowTitle    string  `json:"window_title"`
	WindowWidth    int     `json:"window_width"`
	WindowHeight   int     `json:"window_height"`
	TemplateWidth  int     `json:"template_width"`
	TemplateHeight int     `json:"template_height"`
	MatchX         int     `json:"match_x"`
	MatchY         int     `json:"match_y"`
	MatchScore     float64 `json:"match_score"`
}

// State 单槽会话状态，进程内共享
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New 创建空会话状态
func New() *State {
	return &State{}
}

// RecordWindow 记录窗口标题与像素尺寸
func (s *State) RecordWindow(title string, width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WindowTitle = title
	s.snap.WindowWidth = width
	s.snap.WindowHeight = height
}

// RecordWindowSize 仅刷新窗口尺寸
func (s *State) RecordWindowSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WindowWidth = width
	s.snap.WindowHeight = height
}

// RecordTemplate 记录模板尺寸
func (s *State) RecordTemplate(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.TemplateWidth = width
	s.snap.TemplateHeight = height
}

// RecordMatch 记录匹配位置与得分
func (s *State) RecordMatch(x, y int, score float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.MatchX = x
	s.snap.MatchY = y
	s.snap.MatchScore = score
}

// RecordFind 在一次加锁内同时替换模板尺寸与匹配结果
func (s *State) RecordFind(templateWidth, templateHeight, x, y int, score float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.TemplateWidth = templateWidth
	s.snap.TemplateHeight = templateHeight
	s.snap.MatchX = x
	s.snap.MatchY = y
	s.snap.MatchScore = score
}

// Snapshot 返回当前状态副本
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// WindowTitle 最近一次找到的窗口标题
func (s *State) WindowTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.WindowTitle
}

// WindowSize 最近一次记录的窗口像素尺寸
func (s *State) WindowSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.WindowWidth, s.snap.WindowHeight
}

// TemplateSize 最近一次使用的模板尺寸
func (s *State) TemplateSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.TemplateWidth, s.snap.TemplateHeight
}

// MatchPos 最近一次匹配的左上角坐标
func (s *State) MatchPos() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.MatchX, s.snap.MatchY
}

// MatchScore 最近一次匹配得分
func (s *State) MatchScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.MatchScore
}

// MatchCenter 最近一次匹配区域的中心点
func (s *State) MatchCenter() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.MatchX + s.snap.TemplateWidth/2, s.snap.MatchY + s.snap.TemplateHeight/2
}
