package v1

import (
	"bytes"
	"encoding/json"

	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/pkg/actions"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

func (a *AgentStatus) FromModel(m models.AgentStatus) {
	a.Id = m.ID
	a.Version = m.Version
	a.StartedAt = m.StartedAt
	a.LiveResources = m.LiveResources
	a.LifeCycle = ProcessorStateLifeCycle(m.LifeCycle)
}

func (r InitializeRequest) Session() string {
	return session(r.SessionId)
}

func (r InitializeRequest) ToDescriptor() models.ActionDescriptor {
	d := models.ActionDescriptor{
		Component:     r.Component,
		ArgumentTypes: r.ArgumentTypes,
	}
	if r.Method != nil {
		d.Method = *r.Method
	}
	return d
}

func (r ExecuteRequest) Session() string {
	return session(r.SessionId)
}

func (r ExecuteRequest) Handle() models.Handle {
	if r.ResourceId == nil {
		return 0
	}
	return models.Handle(*r.ResourceId)
}

func (r ExecuteRequest) ToDescriptor() models.ActionDescriptor {
	d := models.ActionDescriptor{
		Method:         r.Method,
		ArgumentTypes:  r.ArgumentTypes,
		ArgumentValues: r.ArgumentValues,
	}
	if r.Component != nil {
		d.Component = *r.Component
	}
	return d
}

func session(id *string) string {
	if id == nil {
		return models.DefaultSessionID
	}
	return models.SessionOrDefault(*id)
}

// SessionOrDefault returns the session id of an optional parameter.
func SessionOrDefault(id *string) string {
	return session(id)
}

func NewResource(info models.ResourceInfo) Resource {
	return Resource{
		ResourceId: uint64(info.Handle),
		SessionId:  info.SessionID,
		Component:  info.Component,
		CreatedAt:  info.CreatedAt,
	}
}

func NewResourceList(sessionID string, infos []models.ResourceInfo) ResourceList {
	l := ResourceList{SessionId: sessionID, Resources: make([]Resource, 0, len(infos))}
	for _, info := range infos {
		l.Resources = append(l.Resources, NewResource(info))
	}
	return l
}

func NewResourceIds(handles []models.Handle) []uint64 {
	ids := make([]uint64, 0, len(handles))
	for _, h := range handles {
		ids = append(ids, uint64(h))
	}
	return ids
}

func NewComponentList(infos []actions.ComponentInfo) ComponentList {
	l := ComponentList{Components: make([]Component, 0, len(infos))}
	for _, info := range infos {
		c := Component{Name: info.Name, Actions: make([]ComponentAction, 0, len(info.Actions))}
		for _, a := range info.Actions {
			action := ComponentAction{Name: a.Name, ParameterTypes: a.ParamTypes}
			if a.ReturnType != "" {
				rt := a.ReturnType
				action.ReturnType = &rt
			}
			c.Actions = append(c.Actions, action)
		}
		l.Components = append(l.Components, c)
	}
	return l
}

// NewProcessorState converts the processor state. Unset ids are left out.
func NewProcessorState(s models.ProcessorState) ProcessorState {
	p := ProcessorState{
		LifeCycle:    ProcessorStateLifeCycle(s.LifeCycle),
		ScenarioType: string(s.ScenarioType()),
		LoadQueues:   map[string]int64{},
	}
	p.RunId = optionalID(s.RunID)
	p.SuiteId = optionalID(s.SuiteID)
	p.TestcaseId = optionalID(s.TestcaseID)
	p.LastExecutedTestcaseId = optionalID(s.LastExecutedTestcaseID)
	if s.RunName != "" {
		name := s.RunName
		p.RunName = &name
	}
	for k, v := range s.LoadQueues {
		p.LoadQueues[k] = v
	}
	return p
}

func optionalID(id int64) *int64 {
	if id < 0 {
		return nil
	}
	return &id
}

func NewRunFromModel(r models.Run) Run {
	return Run{
		Id:          r.ID,
		Name:        r.Name,
		OsName:      r.OSName,
		ProductName: r.ProductName,
		VersionName: r.VersionName,
		BuildName:   r.BuildName,
		HostName:    r.HostName,
		UserNote:    r.UserNote,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Metainfo:    r.Metainfo,
	}
}

func NewTestcaseFromModel(tc models.Testcase) Testcase {
	return Testcase{
		Id:           tc.ID,
		SuiteId:      tc.SuiteID,
		SuiteName:    tc.SuiteName,
		ScenarioName: tc.ScenarioName,
		Name:         tc.Name,
		Result:       tc.Result.String(),
		UserNote:     tc.UserNote,
		StartTime:    tc.StartTime,
		EndTime:      tc.EndTime,
	}
}

type eventDecoder func(payload json.RawMessage) (models.Event, error)

var eventDecoders = map[models.EventType]eventDecoder{
	models.EventStartRun:              decodeEvent[models.StartRun],
	models.EventEndRun:                decodeEvent[models.EndRun],
	models.EventUpdateRun:             decodeEvent[models.UpdateRun],
	models.EventAddRunMetainfo:        decodeEvent[models.AddRunMetainfo],
	models.EventStartSuite:            decodeEvent[models.StartSuite],
	models.EventEndSuite:              decodeEvent[models.EndSuite],
	models.EventUpdateSuite:           decodeEvent[models.UpdateSuite],
	models.EventStartTestCase:         decodeEvent[models.StartTestCase],
	models.EventEndTestCase:           decodeEvent[models.EndTestCase],
	models.EventUpdateTestCase:        decodeEvent[models.UpdateTestCase],
	models.EventJoinTestCase:          decodeEvent[models.JoinTestCase],
	models.EventLeaveTestCase:         decodeEvent[models.LeaveTestCase],
	models.EventAddTestcaseMetainfo:   decodeEvent[models.AddTestcaseMetainfo],
	models.EventAddScenarioMetainfo:   decodeEvent[models.AddScenarioMetainfo],
	models.EventClearScenarioMetainfo: decodeEvent[models.ClearScenarioMetainfo],
	models.EventStartLoadQueue:        decodeEvent[models.StartLoadQueue],
	models.EventEndLoadQueue:          decodeEvent[models.EndLoadQueue],
	models.EventStartCheckpoint:       decodeEvent[models.StartCheckpoint],
	models.EventEndCheckpoint:         decodeEvent[models.EndCheckpoint],
	models.EventInsertCheckpoint:      decodeEvent[models.InsertCheckpoint],
	models.EventInsertMessage:         decodeEvent[models.InsertMessage],
}

func decodeEvent[E models.Event](payload json.RawMessage) (models.Event, error) {
	var e E
	if len(payload) == 0 || string(payload) == "null" {
		return e, nil
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		return nil, srvErrors.NewInvalidArgumentError("invalid %s payload: %v", e.Type(), err)
	}
	return e, nil
}

// ToModel decodes the payload into the event named by Type.
func (r EventRequest) ToModel() (models.EventRequest, error) {
	decode, ok := eventDecoders[models.EventType(r.Type)]
	if !ok {
		return models.EventRequest{}, srvErrors.NewUnsupportedEventError(r.Type)
	}

	event, err := decode(r.Payload)
	if err != nil {
		return models.EventRequest{}, err
	}

	req := models.EventRequest{Event: event}
	if r.Timestamp != nil {
		req.Timestamp = *r.Timestamp
	}
	return req, nil
}
