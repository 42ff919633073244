// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package i2cipd publishes the I2C IP fields to redis and stores the
// fields written there.
package i2cipd

import (
	"fmt"
	"io"
	"net/rpc"
	"strings"
	"sync"
	"time"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/platinasystems/atsock"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"

	"github.com/platinasystems/de1soc/attr"
	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/goes"
	"github.com/platinasystems/de1soc/internal/options"
	"github.com/platinasystems/de1soc/lang"
)

const Name = "i2cipd"

var DefaultInterval = 5 * time.Second

// Publisher sets the redis key to value.
type Publisher interface {
	Publish(key string, value interface{}) error
}

type Command struct {
	Info
	Init func()
	init sync.Once

	// Device, if set, is used instead of opening the register window.
	Device *i2cip.Device
	// Publisher, if set, replaces the redis connection.
	Publisher Publisher
}

type Info struct {
	mutex  sync.Mutex
	attrs  attr.Attrs
	pub    Publisher
	rpc    *atsock.RpcServer
	closer []io.Closer
	stop   chan struct{}
	last   map[string]uint32
}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return Name + " " + options.Usage +
		" [-redis ADDR [-hash HASH]] [-interval DURATION]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "I2C IP register field daemon",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Publish each field as "` + attr.Group + `.FIELD: VALUE" then republish
	those that change. Store a field with:

		hset platina ` + attr.Group + `.FIELD VALUE

OPTIONS
	-redis ADDR
		HSET fields on this redis server instead of the local redisd
		and store "FIELD VALUE" messages published to "` +
			attr.Key("set") + `"
	-hash HASH
		with -redis, the hash of the fields, default: platina
	-interval DURATION
		poll period, default: 5s
` + options.Man,
	}
}

func (*Command) Kind() goes.Kind { return goes.Daemon }

func (c *Command) Main(args ...string) error {
	if c.Init != nil {
		c.init.Do(c.Init)
	}
	stop := c.stopper()
	defer c.release()
	opt, args, err := options.New(args)
	if err != nil {
		return err
	}
	parm, args := parms.New(args, "-redis", "-hash", "-interval")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	interval := DefaultInterval
	if s := parm.ByName["-interval"]; len(s) > 0 {
		if interval, err = time.ParseDuration(s); err != nil {
			return fmt.Errorf("-interval: %v", err)
		}
		if interval <= 0 {
			return fmt.Errorf("-interval: %v: not positive", interval)
		}
	}
	hash := parm.ByName["-hash"]
	if len(hash) == 0 {
		hash = "platina"
	}

	d := c.Device
	if d == nil {
		var closer io.Closer
		if d, closer, err = opt.Open(); err != nil {
			return err
		}
		defer closer.Close()
	}

	c.mutex.Lock()
	c.attrs = attr.New(d)
	c.last = make(map[string]uint32)
	c.mutex.Unlock()

	select {
	case <-stop:
		return nil
	default:
	}
	switch addr := parm.ByName["-redis"]; {
	case c.Publisher != nil:
		c.pub = c.Publisher
	case len(addr) > 0:
		if err = c.dial(addr, hash, stop); err != nil {
			return err
		}
	default:
		if err = c.assign(); err != nil {
			return err
		}
	}

	if err = c.update(); err != nil {
		return err
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-t.C:
			if err = c.update(); err != nil {
				log.Print("daemon", "err", Name, ": ", err)
			}
		}
	}
}

// Close stops Main. If Main hasn't started, the next Main returns at once.
func (c *Command) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.stop == nil {
		c.stop = make(chan struct{})
	}
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	return nil
}

func (c *Command) stopper() chan struct{} {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.stop == nil {
		c.stop = make(chan struct{})
	}
	return c.stop
}

// assign this daemon the local redis fields of the group.
func (c *Command) assign() error {
	if err := redis.IsReady(); err != nil {
		return err
	}
	pub, err := publisher.New()
	if err != nil {
		return err
	}
	c.pub = printer{pub}
	c.closer = append(c.closer, pub)
	if c.rpc, err = atsock.NewRpcServer(Name); err != nil {
		return err
	}
	rpc.Register(&c.Info)
	return redis.Assign(redis.DefaultHash+":"+attr.Group+".", Name, "Info")
}

// dial the redis server at addr for HSET and for the store requests
// published to the group's set channel.
func (c *Command) dial(addr, hash string, stop <-chan struct{}) error {
	conn, err := redigo.Dial("tcp", addr)
	if err != nil {
		return err
	}
	c.closer = append(c.closer, conn)
	c.pub = hashSetter{conn, hash}
	sub, err := redigo.Dial("tcp", addr)
	if err != nil {
		return err
	}
	c.closer = append(c.closer, sub)
	psc := redigo.PubSubConn{Conn: sub}
	if err = psc.Subscribe(attr.Key("set")); err != nil {
		return err
	}
	go c.listen(psc, stop)
	return nil
}

// release stops the listener before closing its connection then
// clears stop for the next Main.
func (c *Command) release() {
	c.Close()
	c.mutex.Lock()
	c.stop = nil
	c.mutex.Unlock()
	if c.rpc != nil {
		c.rpc.Close()
		c.rpc = nil
	}
	for i := len(c.closer) - 1; i >= 0; i-- {
		c.closer[i].Close()
	}
	c.closer = nil
}

func (c *Command) update() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.publish()
}

// listen for "FIELD VALUE" store requests until the connection closes.
func (i *Info) listen(psc redigo.PubSubConn, stop <-chan struct{}) {
	for {
		switch t := psc.Receive().(type) {
		case redigo.Message:
			if err := i.request(string(t.Data)); err != nil {
				log.Print("daemon", "err", Name, ": ", err)
			}
		case error:
			select {
			case <-stop:
			default:
				log.Print("daemon", "err", Name, ": ", t)
			}
			return
		}
	}
}

func (i *Info) request(s string) error {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return fmt.Errorf("%q: want FIELD VALUE", s)
	}
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.store(fields[0], fields[1])
}

func (i *Info) Hset(args args.Hset, reply *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	err := i.store(args.Field, string(args.Value))
	if err == nil {
		*reply = 1
	}
	return err
}

// store the named field then publish all that changed with it.
func (i *Info) store(name, value string) error {
	name = strings.TrimPrefix(name, attr.Group+".")
	a, found := i.attrs.ByName(name)
	if !found {
		return fmt.Errorf("%s: unknown field", name)
	}
	if err := a.Parse(value); err != nil {
		return err
	}
	return i.publish()
}

func (i *Info) publish() error {
	for _, a := range i.attrs {
		v := a.Show()
		if last, found := i.last[a.Name]; found && v == last {
			continue
		}
		if err := i.pub.Publish(attr.Key(a.Name), v); err != nil {
			return err
		}
		i.last[a.Name] = v
	}
	return nil
}

type printer struct{ *publisher.Publisher }

func (p printer) Publish(key string, value interface{}) error {
	_, err := p.Print(key, ": ", value)
	return err
}

type hashSetter struct {
	conn redigo.Conn
	hash string
}

func (h hashSetter) Publish(key string, value interface{}) error {
	_, err := h.conn.Do("HSET", h.hash, key, value)
	return err
}
