/*
Package x contains the extension points shared by the modules under x/.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct an application. The
Authenticator defined here is how handlers learn who signed the current
transaction without depending on a concrete signature scheme.
*/
package x
