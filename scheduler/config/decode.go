package config

import (
	"bytes"
	"encoding/json"

	yaml "github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// rawDocument mirrors the JSON and YAML layouts. Older task files use
// Portuguese keys, those are accepted next to the English ones.
type rawDocument struct {
	Servers     []rawServer  `json:"servers" yaml:"servers"`
	Servidores  []rawServer  `json:"servidores" yaml:"servidores"`
	Requests    []rawRequest `json:"requests" yaml:"requests"`
	Requisicoes []rawRequest `json:"requisicoes" yaml:"requisicoes"`
}

type rawServer struct {
	ID         interface{} `json:"id" yaml:"id"`
	Capacity   *int        `json:"capacity" yaml:"capacity"`
	Capacidade *int        `json:"capacidade" yaml:"capacidade"`
}

type rawRequest struct {
	ID          interface{} `json:"id" yaml:"id"`
	Type        *string     `json:"type" yaml:"type"`
	Tipo        *string     `json:"tipo" yaml:"tipo"`
	Priority    *int        `json:"priority" yaml:"priority"`
	Prioridade  *int        `json:"prioridade" yaml:"prioridade"`
	ExecTime    *float64    `json:"exec_time" yaml:"exec_time"`
	TempoExec   *float64    `json:"tempo_exec" yaml:"tempo_exec"`
	ArrivalTime *float64    `json:"arrival_time" yaml:"arrival_time"`
	TempChegada *float64    `json:"temp_chegada" yaml:"temp_chegada"`
}

// hclDocument is the HCL layout:
//
//	server "s1" {
//	  capacity = 2
//	}
//	request "t1" {
//	  type         = "cpu"
//	  priority     = 1
//	  exec_time    = 2.5
//	  arrival_time = 0
//	}
type hclDocument struct {
	Servers  []hclServer  `hcl:"server,block"`
	Requests []hclRequest `hcl:"request,block"`
}

type hclServer struct {
	ID       string `hcl:"id,label"`
	Capacity *int   `hcl:"capacity,optional"`
}

type hclRequest struct {
	ID          string   `hcl:"id,label"`
	Type        *string  `hcl:"type,optional"`
	Priority    *int     `hcl:"priority,optional"`
	ExecTime    *float64 `hcl:"exec_time,optional"`
	ArrivalTime *float64 `hcl:"arrival_time,optional"`
}

func decodeJSON(data []byte) (*Topology, error) {
	doc := rawDocument{}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.topology(), nil
}

func decodeYAML(data []byte) (*Topology, error) {
	doc := rawDocument{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.topology(), nil
}

func decodeHCL(filename string, data []byte) (*Topology, error) {
	doc := hclDocument{}
	if err := hclsimple.Decode(filename, data, nil, &doc); err != nil {
		return nil, err
	}

	topo := &Topology{}
	for _, s := range doc.Servers {
		topo.Servers = append(topo.Servers, Server{ID: s.ID, Capacity: intOr(0, s.Capacity)})
	}
	for _, r := range doc.Requests {
		topo.Requests = append(topo.Requests, Request{
			ID:          r.ID,
			Type:        stringOr("", r.Type),
			Priority:    intOr(DefaultPriority, r.Priority),
			ExecTime:    floatOr(0, r.ExecTime),
			ArrivalTime: floatOr(0, r.ArrivalTime),
		})
	}
	return topo, nil
}

func (d rawDocument) topology() *Topology {
	topo := &Topology{}
	for _, s := range append(d.Servers, d.Servidores...) {
		topo.Servers = append(topo.Servers, Server{
			ID:       idString(s.ID),
			Capacity: intOr(0, s.Capacity, s.Capacidade),
		})
	}
	for _, r := range append(d.Requests, d.Requisicoes...) {
		topo.Requests = append(topo.Requests, Request{
			ID:          idString(r.ID),
			Type:        stringOr("", r.Type, r.Tipo),
			Priority:    intOr(DefaultPriority, r.Priority, r.Prioridade),
			ExecTime:    floatOr(0, r.ExecTime, r.TempoExec),
			ArrivalTime: floatOr(0, r.ArrivalTime, r.TempChegada),
		})
	}
	return topo
}

// first non nil value, or def
func intOr(def int, vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return def
}

func floatOr(def float64, vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return def
}

func stringOr(def string, vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return def
}
